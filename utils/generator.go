package utils

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

// Slugify lowercases title, folds French accents and joins words with dashes.
func Slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range norm.NFD.String(strings.ToLower(title)) {
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case r == 'œ':
			b.WriteString("oe")
			dash = false
		case r == 'æ':
			b.WriteString("ae")
			dash = false
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// GenerateUniqueSlug returns base, or base-2, base-3, ... whichever is not yet used
// in table. exceptID excludes the row being updated.
func GenerateUniqueSlug(tx *gorm.DB, table, base, exceptID string) (string, error) {
	if base == "" {
		return "", errors.New("slug cannot be empty")
	}

	slug := base
	for i := 2; ; i++ {
		var count int64
		q := tx.Table(table).Where("slug = ?", slug)
		if exceptID != "" {
			q = q.Where("id <> ?", exceptID)
		}
		if err := q.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

const otpDigits = "0123456789"

// GenerateOTP returns a random numeric code of length n.
func GenerateOTP(n int) (string, error) {
	b := make([]byte, n)
	max := big.NewInt(int64(len(otpDigits)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = otpDigits[idx.Int64()]
	}
	return string(b), nil
}
