package helper

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
)

// InitCloudinary returns nil when credentials are not configured; poster signing is then disabled.
func InitCloudinary(cloudName, apiKey, apiSecret string) (*cloudinary.Cloudinary, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, nil
	}
	return cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
}

type PosterSignature struct {
	CloudName string `json:"cloudName"`
	ApiKey    string `json:"apiKey"`
	Timestamp int64  `json:"timestamp"`
	Folder    string `json:"folder,omitempty"`
	PublicId  string `json:"publicId,omitempty"`
	Signature string `json:"signature"`
}

// SignPosterUpload signs a direct browser upload of a movie poster.
func SignPosterUpload(cld *cloudinary.Cloudinary, folder, publicId string, now time.Time) (*PosterSignature, error) {
	if cld == nil {
		return nil, errors.New("cloudinary is not configured")
	}
	params := url.Values{}
	if folder != "" {
		params.Set("folder", folder)
	}
	if publicId != "" {
		params.Set("public_id", publicId)
	}
	timestamp := now.Unix()
	params.Set("timestamp", fmt.Sprintf("%d", timestamp))

	signature, err := api.SignParameters(params, cld.Config.Cloud.APISecret)
	if err != nil {
		return nil, err
	}
	return &PosterSignature{
		CloudName: cld.Config.Cloud.CloudName,
		ApiKey:    cld.Config.Cloud.APIKey,
		Timestamp: timestamp,
		Folder:    folder,
		PublicId:  publicId,
		Signature: signature,
	}, nil
}
