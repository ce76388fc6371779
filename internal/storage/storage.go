package storage

import (
	"fmt"
	"mime/multipart"

	"github.com/leonemunyao/alx-project-nexus/config"
)

// ImageStorage 抽象车辆图片的存储后端
// path 是桶内或目录内的相对路径，返回可公开访问的URL或相对路径
type ImageStorage interface {
	UploadFile(file *multipart.FileHeader, path string) (string, error)
}

// New 根据配置选择存储后端
func New(cfg *config.Config) (ImageStorage, error) {
	switch cfg.StorageBackend {
	case "s3":
		return NewS3Client(cfg.S3Region, cfg.S3Bucket)
	case "gcs":
		return NewGCSClient(cfg.GCSProjectID, cfg.GCSBucketName, cfg.GCSCredentialsFile)
	case "local":
		return NewLocalStorage(cfg.LocalStoragePath)
	default:
		return nil, fmt.Errorf("未知的存储后端: %s", cfg.StorageBackend)
	}
}
