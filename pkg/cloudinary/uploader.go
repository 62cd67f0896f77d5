package cloudinary

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type CloudinaryUploader struct {
	cld    *cld.Cloudinary
	prefix string
}

// NewCloudinaryUploader stores every upload below prefix ("pim" by default).
func NewCloudinaryUploader(cloud *cld.Cloudinary, prefix string) *CloudinaryUploader {
	if prefix == "" {
		prefix = "pim"
	}
	return &CloudinaryUploader{cld: cloud, prefix: prefix}
}

func boolPtr(b bool) *bool {
	return &b
}

func (u *CloudinaryUploader) UploadBytes(
	ctx context.Context,
	folder string,
	filename string,
	b []byte,
) (string, error) {
	publicID := strings.TrimSuffix(filename, filepath.Ext(filename))

	res, err := u.cld.Upload.Upload(
		ctx,
		bytes.NewReader(b),
		uploader.UploadParams{
			Folder:       u.prefix + "/" + folder,
			PublicID:     publicID,
			ResourceType: "image",
			Overwrite:    boolPtr(false),
		},
	)
	if err != nil {
		return "", err
	}

	return res.SecureURL, nil
}
