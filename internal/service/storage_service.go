package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"learnhub_backend/internal/config"
	"learnhub_backend/internal/util"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageService 统一封装 minio 与本地磁盘两种存储后端
type StorageService struct {
	cfg    config.StorageConfig
	client *minio.Client
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	s := &StorageService{cfg: cfg.Storage}

	if cfg.Storage.Type == util.StorageMinio {
		client, err := minio.New(cfg.Storage.MinioEndpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Storage.MinioAccessID, cfg.Storage.MinioSecret, ""),
			Secure: cfg.Storage.MinioUseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("初始化 minio 客户端失败: %w", err)
		}

		exists, err := client.BucketExists(context.Background(), cfg.Storage.MinioBucket)
		if err != nil {
			return nil, fmt.Errorf("检查 bucket 失败: %w", err)
		}
		if !exists {
			if err := client.MakeBucket(context.Background(), cfg.Storage.MinioBucket, minio.MakeBucketOptions{}); err != nil {
				return nil, fmt.Errorf("创建 bucket 失败: %w", err)
			}
		}
		s.client = client
	}

	return s, nil
}

// Upload 保存文件并返回可访问的 URL
func (s *StorageService) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if s.cfg.Type == util.StorageMinio {
		_, err := s.client.PutObject(ctx, s.cfg.MinioBucket, objectName, reader, size,
			minio.PutObjectOptions{ContentType: contentType})
		if err != nil {
			return "", fmt.Errorf("minio 上传失败: %w", err)
		}
		return s.objectURL(objectName), nil
	}

	dst := filepath.Join(s.cfg.LocalPath, objectName)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, reader); err != nil {
		return "", err
	}
	return "/uploads/" + objectName, nil
}

// UploadLocalFile 上传磁盘上的文件（转码产物等）
func (s *StorageService) UploadLocalFile(ctx context.Context, localPath, objectName, contentType string) (string, error) {
	if s.cfg.Type == util.StorageMinio {
		_, err := s.client.FPutObject(ctx, s.cfg.MinioBucket, objectName, localPath,
			minio.PutObjectOptions{ContentType: contentType})
		if err != nil {
			return "", fmt.Errorf("minio 上传失败: %w", err)
		}
		return s.objectURL(objectName), nil
	}

	dst := filepath.Join(s.cfg.LocalPath, objectName)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}
	src, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer src.Close()
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, src); err != nil {
		return "", err
	}
	return "/uploads/" + objectName, nil
}

// SaveTemp 将上传流落到临时文件，供转码 worker 读取
func (s *StorageService) SaveTemp(reader io.Reader, ext string) (string, error) {
	f, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, reader); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func (s *StorageService) objectURL(objectName string) string {
	scheme := "http"
	if s.cfg.MinioUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinioEndpoint, s.cfg.MinioBucket, objectName)
}
