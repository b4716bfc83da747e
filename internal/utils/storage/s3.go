package storage

import (
	"agri-assistant/internal/utils"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
)

var (
	AllowImage = []string{"image/*"}

	ErrFileTypeNotAllowed = errors.New("file type not allowed")
	ErrEmptyFile          = errors.New("file is empty")
)

const requestTimeout = 60 * time.Second

type (
	AwsS3 interface {
		UploadFile(fileName string, file *multipart.FileHeader, folder string, allowedTypes ...string) (string, error)
		UpdateFile(objectKey string, file *multipart.FileHeader, allowedTypes ...string) (string, error)
		DeleteFile(objectKey string) error
		GetPublicLinkKey(objectKey string) string
		GetObjectKeyFromLink(link string) string
	}

	awsS3 struct {
		client *s3.Client
		bucket string
		region string
	}
)

func NewAwsS3() (AwsS3, error) {
	region := utils.GetConfig("AWS_S3_REGION")
	cfg, err := config.LoadDefaultConfig(
		context.Background(),
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			utils.GetConfig("AWS_ACCESS_KEY"),
			utils.GetConfig("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &awsS3{
		client: s3.NewFromConfig(cfg),
		bucket: utils.GetConfig("AWS_S3_BUCKET"),
		region: region,
	}, nil
}

// DetectContentType sniffs the MIME type of data from its leading bytes.
func DetectContentType(data []byte) string {
	return mimetype.Detect(data).String()
}

// MatchType reports whether contentType is in allowed. An entry ending in
// "/*" matches every subtype; an empty allowed list matches everything.
func MatchType(contentType string, allowed ...string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if prefix, ok := strings.CutSuffix(a, "*"); ok {
			if strings.HasPrefix(contentType, prefix) {
				return true
			}
			continue
		}
		if contentType == a {
			return true
		}
	}
	return false
}

// ReadFile reads a multipart upload fully.
func ReadFile(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	return data, nil
}

func (a *awsS3) UploadFile(fileName string, file *multipart.FileHeader, folder string, allowedTypes ...string) (string, error) {
	data, err := ReadFile(file)
	if err != nil {
		return "", err
	}

	mtype := mimetype.Detect(data)
	if !MatchType(mtype.String(), allowedTypes...) {
		return "", ErrFileTypeNotAllowed
	}

	objectKey := fileName + mtype.Extension()
	if folder != "" {
		objectKey = folder + "/" + objectKey
	}

	if err := a.put(objectKey, data, mtype.String()); err != nil {
		return "", err
	}
	return objectKey, nil
}

func (a *awsS3) UpdateFile(objectKey string, file *multipart.FileHeader, allowedTypes ...string) (string, error) {
	data, err := ReadFile(file)
	if err != nil {
		return "", err
	}

	contentType := DetectContentType(data)
	if !MatchType(contentType, allowedTypes...) {
		return "", ErrFileTypeNotAllowed
	}

	if err := a.put(objectKey, data, contentType); err != nil {
		return "", err
	}
	return objectKey, nil
}

func (a *awsS3) put(objectKey string, data []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", objectKey, err)
	}
	return nil
}

func (a *awsS3) DeleteFile(objectKey string) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

func (a *awsS3) GetPublicLinkKey(objectKey string) string {
	return PublicLink(a.bucket, a.region, objectKey)
}

func (a *awsS3) GetObjectKeyFromLink(link string) string {
	return ObjectKeyFromLink(a.bucket, a.region, link)
}

func PublicLink(bucket, region, objectKey string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, objectKey)
}

func ObjectKeyFromLink(bucket, region, link string) string {
	prefix := PublicLink(bucket, region, "")
	key, ok := strings.CutPrefix(link, prefix)
	if !ok {
		return ""
	}
	return key
}
