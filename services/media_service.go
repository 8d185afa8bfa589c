package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	config "github.com/atoile/micro_naija/configs"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const mediaRoot = "atoile_naija"

// Upload folders, relative to the media root.
const (
	FolderNews         = "news"
	FolderPodcastAudio = "podcasts/audio"
	FolderPodcastVideo = "podcasts/video"
	FolderGalleries    = "galleries"
	FolderPedagogies   = "pedagogies"
)

var uploadFolders = map[string]bool{
	FolderNews:         true,
	FolderPodcastAudio: true,
	FolderPodcastVideo: true,
	FolderGalleries:    true,
	FolderPedagogies:   true,
}

var ErrMediaNotConfigured = errors.New("media storage is not configured")

// UploadOptions selects where a file lands and how the CDN treats it.
// ResourceType is one of image, video, raw or auto.
type UploadOptions struct {
	Folder       string
	PublicID     string
	ResourceType string
}

type UploadedMedia struct {
	PublicID     string `json:"public_id"`
	SecureURL    string `json:"secure_url"`
	ResourceType string `json:"resource_type"`
	Format       string `json:"format"`
}

// Transform mirrors the CDN's delivery options for optimized URLs.
type Transform struct {
	Width   int
	Height  int
	Crop    string
	Quality string
	Format  string
}

// MediaStore hosts uploaded media.
type MediaStore interface {
	Upload(ctx context.Context, file io.Reader, opts UploadOptions) (*UploadedMedia, error)
	Destroy(ctx context.Context, publicID, resourceType string) error
	URL(publicID string, t Transform) (string, error)
	SignUpload(folder string, timestamp int64) (*UploadSignature, error)
}

type UploadSignature struct {
	Signature string `json:"signature"`
	Timestamp int64  `json:"timestamp"`
	APIKey    string `json:"api_key"`
	CloudName string `json:"cloud_name"`
	Folder    string `json:"folder"`
}

var Media MediaStore = unconfigured{}

func InitMediaService() {
	cloudinaryURL := config.Config("CLOUDINARY_URL")
	if cloudinaryURL == "" {
		log.Println("⚠️ CLOUDINARY_URL not set, media uploads are disabled.")
		return
	}

	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		log.Printf("🔥 Failed to initialize Cloudinary: %v", err)
		return
	}
	cld.Config.URL.Secure = true

	Media = &CloudinaryStore{cld: cld}
	log.Println("✅ Media service initialized successfully.")
}

// MediaFolder validates folder and returns its full CDN path.
func MediaFolder(folder string) (string, error) {
	if !uploadFolders[folder] {
		return "", fmt.Errorf("unknown upload folder %q", folder)
	}
	return mediaRoot + "/" + folder, nil
}

// Transformation renders t as a CDN transformation string, e.g.
// "w_640,h_360,c_fill,q_auto,f_auto".
func Transformation(t Transform) string {
	crop, quality, format := t.Crop, t.Quality, t.Format
	if crop == "" {
		crop = "fill"
	}
	if quality == "" {
		quality = "auto"
	}
	if format == "" {
		format = "auto"
	}

	parts := make([]string, 0, 5)
	if t.Width > 0 {
		parts = append(parts, "w_"+strconv.Itoa(t.Width))
	}
	if t.Height > 0 {
		parts = append(parts, "h_"+strconv.Itoa(t.Height))
	}
	parts = append(parts, "c_"+crop, "q_"+quality, "f_"+format)
	return strings.Join(parts, ",")
}

type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func (s *CloudinaryStore) Upload(ctx context.Context, file io.Reader, opts UploadOptions) (*UploadedMedia, error) {
	folder, err := MediaFolder(opts.Folder)
	if err != nil {
		return nil, err
	}
	resourceType := opts.ResourceType
	if resourceType == "" {
		resourceType = "auto"
	}

	res, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       folder,
		PublicID:     opts.PublicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return nil, fmt.Errorf("upload to cloudinary: %w", err)
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("upload to cloudinary: %s", res.Error.Message)
	}

	return &UploadedMedia{
		PublicID:     res.PublicID,
		SecureURL:    res.SecureURL,
		ResourceType: res.ResourceType,
		Format:       res.Format,
	}, nil
}

func (s *CloudinaryStore) Destroy(ctx context.Context, publicID, resourceType string) error {
	if resourceType == "" {
		resourceType = "image"
	}
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return fmt.Errorf("destroy %s: %w", publicID, err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("destroy %s: %s", publicID, res.Error.Message)
	}
	if res.Result != "ok" && res.Result != "not found" {
		return fmt.Errorf("destroy %s: unexpected result %q", publicID, res.Result)
	}
	return nil
}

func (s *CloudinaryStore) URL(publicID string, t Transform) (string, error) {
	img, err := s.cld.Image(publicID)
	if err != nil {
		return "", err
	}
	img.Transformation = Transformation(t)
	return img.String()
}

func (s *CloudinaryStore) SignUpload(folder string, timestamp int64) (*UploadSignature, error) {
	fullFolder, err := MediaFolder(folder)
	if err != nil {
		return nil, err
	}
	return signUpload(s.cld.Config.Cloud.CloudName, s.cld.Config.Cloud.APIKey, s.cld.Config.Cloud.APISecret, fullFolder, timestamp)
}

type unconfigured struct{}

func (unconfigured) Upload(context.Context, io.Reader, UploadOptions) (*UploadedMedia, error) {
	return nil, ErrMediaNotConfigured
}

func (unconfigured) Destroy(context.Context, string, string) error {
	return ErrMediaNotConfigured
}

func (unconfigured) URL(string, Transform) (string, error) {
	return "", ErrMediaNotConfigured
}

func (unconfigured) SignUpload(string, int64) (*UploadSignature, error) {
	return nil, ErrMediaNotConfigured
}
