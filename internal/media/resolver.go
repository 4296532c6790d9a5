package media

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"bibiartisan/internal/config"
	"bibiartisan/internal/domain"
)

// Kind is the asset type behind a media reference
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// Resolver turns an opaque media reference into a displayable URL
type Resolver interface {
	Resolve(ctx context.Context, ref domain.MediaRef, kind Kind) (string, error)
}

// New builds the resolver selected by cfg.Provider
func New(ctx context.Context, cfg *config.MediaConfig) (Resolver, error) {
	switch cfg.Provider {
	case "cloudinary":
		return NewCloudinaryResolver(cfg.CloudName), nil
	case "s3":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return NewS3Resolver(s3.NewFromConfig(awsCfg), cfg.Bucket, cfg.PresignExpiry), nil
	default:
		return nil, fmt.Errorf("unsupported media provider: %s", cfg.Provider)
	}
}

// isAbsolute reports whether ref is already a full URL
func isAbsolute(ref domain.MediaRef) bool {
	s := string(ref)
	return strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://")
}

// CloudinaryResolver builds delivery URLs for Cloudinary public IDs
type CloudinaryResolver struct {
	cloudName string
}

// NewCloudinaryResolver creates a resolver for the given cloud
func NewCloudinaryResolver(cloudName string) *CloudinaryResolver {
	return &CloudinaryResolver{cloudName: cloudName}
}

// Resolve returns https://res.cloudinary.com/<cloud>/<kind>/upload/<ref>
func (r *CloudinaryResolver) Resolve(_ context.Context, ref domain.MediaRef, kind Kind) (string, error) {
	if ref == "" {
		return "", nil
	}
	if isAbsolute(ref) {
		return string(ref), nil
	}
	if r.cloudName == "" {
		return "", errors.New("cloudinary cloud name is not configured")
	}
	u := url.URL{
		Scheme: "https",
		Host:   "res.cloudinary.com",
		Path:   fmt.Sprintf("/%s/%s/upload/%s", r.cloudName, kind, strings.TrimPrefix(string(ref), "/")),
	}
	return u.String(), nil
}

// S3Resolver hands out presigned GET URLs for objects in one bucket
type S3Resolver struct {
	presigner *s3.PresignClient
	bucket    string
	expiry    time.Duration
}

// NewS3Resolver creates a resolver over client
func NewS3Resolver(client *s3.Client, bucket string, expiry time.Duration) *S3Resolver {
	return &S3Resolver{
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
		expiry:    expiry,
	}
}

// Resolve presigns a GET for the object keyed by ref
func (r *S3Resolver) Resolve(ctx context.Context, ref domain.MediaRef, _ Kind) (string, error) {
	if ref == "" {
		return "", nil
	}
	if isAbsolute(ref) {
		return string(ref), nil
	}
	req, err := r.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(string(ref)),
	}, s3.WithPresignExpires(r.expiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", ref, err)
	}
	return req.URL, nil
}
