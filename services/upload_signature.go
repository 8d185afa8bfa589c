package services

import (
	"strconv"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// signUpload signs the parameters of a direct browser upload into folder.
func signUpload(cloudName, apiKey, secret, folder string, timestamp int64) (*UploadSignature, error) {
	paramsToSign, err := api.StructToParams(uploader.UploadParams{
		Folder: folder,
	})
	if err != nil {
		return nil, err
	}
	paramsToSign.Set("timestamp", strconv.FormatInt(timestamp, 10))

	signature, err := api.SignParameters(paramsToSign, secret)
	if err != nil {
		return nil, err
	}

	return &UploadSignature{
		Signature: signature,
		Timestamp: timestamp,
		APIKey:    apiKey,
		CloudName: cloudName,
		Folder:    folder,
	}, nil
}
