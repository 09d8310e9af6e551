package photo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/goliatone/go-contacts/pkg/types"
)

const defaultKeyPrefix = "contacts"

// ErrBucketRequired indicates the S3 store has no bucket configured.
var ErrBucketRequired = errors.New("go-contacts: photo bucket required")

// ObjectPutter is the subset of the S3 client used by S3Store.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config wires the S3 photo store.
type S3Config struct {
	Bucket        string
	Region        string
	Endpoint      string
	PublicBaseURL string
	KeyPrefix     string
	MaxBytes      int
	Client        ObjectPutter
	IDGen         types.IDGenerator
}

// S3Store uploads photos to S3 and returns their public URL.
type S3Store struct {
	client   ObjectPutter
	bucket   string
	baseURL  string
	prefix   string
	maxBytes int
	idGen    types.IDGenerator
}

// NewS3Store builds the store. When no client is supplied the default AWS
// credential chain is used.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, ErrBucketRequired
	}
	client := cfg.Client
	if client == nil {
		var opts []func(*awsconfig.LoadOptions) error
		if cfg.Region != "" {
			opts = append(opts, awsconfig.WithRegion(cfg.Region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("go-contacts: load aws config: %w", err)
		}
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
				o.UsePathStyle = true
			}
		})
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL(bucket, cfg.Region, cfg.Endpoint)
	}
	prefix := strings.Trim(strings.TrimSpace(cfg.KeyPrefix), "/")
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	idGen := cfg.IDGen
	if idGen == nil {
		idGen = types.UUIDGenerator{}
	}
	return &S3Store{
		client:   client,
		bucket:   bucket,
		baseURL:  baseURL,
		prefix:   prefix,
		maxBytes: cfg.MaxBytes,
		idGen:    idGen,
	}, nil
}

var _ types.PhotoStore = (*S3Store)(nil)

// Store implements types.PhotoStore. Objects are keyed by owner so a
// prefix listing returns every photo of one account.
func (s *S3Store) Store(ctx context.Context, upload types.PhotoUpload) (string, error) {
	detected, err := Validate(upload.Data, s.maxBytes)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("%s/%s/%s%s", s.prefix, upload.OwnerID, s.idGen.UUID(), detected.Extension)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(upload.Data),
		ContentType:   aws.String(detected.MIME),
		ContentLength: aws.Int64(int64(len(upload.Data))),
	})
	if err != nil {
		return "", fmt.Errorf("go-contacts: put photo object: %w", err)
	}
	return s.baseURL + "/" + key, nil
}

func defaultBaseURL(bucket, region, endpoint string) string {
	if endpoint != "" {
		return strings.TrimRight(endpoint, "/") + "/" + bucket
	}
	if region == "" {
		return "https://" + bucket + ".s3.amazonaws.com"
	}
	return "https://" + bucket + ".s3." + region + ".amazonaws.com"
}
