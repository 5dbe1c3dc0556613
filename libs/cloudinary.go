package libs

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Storage is the object-storage collaborator for uploaded files.
type Storage struct {
	cld *cloudinary.Cloudinary
}

func NewStorage(cloudinaryURL string) (*Storage, error) {
	if cloudinaryURL == "" {
		return nil, errors.New("CLOUDINARY_URL not set")
	}

	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init failed: %w", err)
	}
	return &Storage{cld: cld}, nil
}

type UploadedFile struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

// Upload streams the file into the given bucket/folder and returns its public
// URL plus the storage path needed to delete it later.
func (s *Storage) Upload(ctx context.Context, r io.Reader, publicID, bucket, folder string) (*UploadedFile, error) {
	target := bucket
	if folder != "" {
		target = bucket + "/" + folder
	}

	resp, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID: publicID,
		Folder:   target,
	})
	if err != nil {
		return nil, err
	}

	url := resp.SecureURL
	if url == "" {
		url = resp.URL
	}
	if url == "" {
		return nil, errors.New("storage returned no URL")
	}

	return &UploadedFile{URL: url, Path: resp.PublicID}, nil
}

func (s *Storage) Delete(ctx context.Context, path string) error {
	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: path})
	if err != nil {
		return err
	}
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("storage deletion failed: %s", result.Result)
	}
	return nil
}
