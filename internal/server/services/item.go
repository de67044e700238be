package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	sc "github.com/dmitrijs2005/itemkeeper/internal/server/config"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	"github.com/dmitrijs2005/itemkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Seams for testing the AWS presign plumbing without network access.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// presignURLValidity bounds how long a minted attachment URL stays usable.
const presignURLValidity = 15 * time.Minute

// ItemService implements ownership-scoped CRUD over items plus presigned
// attachment URLs. Every operation takes the caller's user ID and never
// touches rows owned by anyone else.
type ItemService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

// NewItemService constructs an ItemService using repositories and server config.
func NewItemService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config) *ItemService {
	return &ItemService{
		db:          db,
		repomanager: m,
		config:      cfg,
	}
}

// List returns all items owned by userID, newest creation time first.
func (s *ItemService) List(ctx context.Context, userID string) ([]*models.Item, error) {
	repo := s.repomanager.Items(s.db)

	result, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing items: %w", err)
	}
	return result, nil
}

// Create validates title and description and persists a new item owned by
// userID.
func (s *ItemService) Create(ctx context.Context, userID, title, description string) (*models.Item, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if title == "" || description == "" {
		return nil, fmt.Errorf("%w: Title and description are required", common.ErrorValidation)
	}

	repo := s.repomanager.Items(s.db)

	item, err := repo.Create(ctx, &models.Item{UserID: userID, Title: title, Description: description})
	if err != nil {
		return nil, fmt.Errorf("error creating item: %w", err)
	}
	return item, nil
}

// Get returns the item only if it exists and is owned by userID; a wrong
// owner is indistinguishable from a missing item.
func (s *ItemService) Get(ctx context.Context, userID, id string) (*models.Item, error) {
	repo := s.repomanager.Items(s.db)

	item, err := repo.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error fetching item: %w", err)
	}
	return item, nil
}

// Update validates the new field values and applies them only if the item
// exists and is owned by userID. The item's ID, owner, and creation time are
// preserved.
func (s *ItemService) Update(ctx context.Context, userID, id, title, description string) (*models.Item, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if title == "" || description == "" {
		return nil, fmt.Errorf("%w: Title and description are required", common.ErrorValidation)
	}

	repo := s.repomanager.Items(s.db)

	item, err := repo.Update(ctx, &models.Item{ID: id, UserID: userID, Title: title, Description: description})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating item: %w", err)
	}
	return item, nil
}

// Delete removes the item only if it is owned by userID.
func (s *ItemService) Delete(ctx context.Context, userID, id string) error {
	repo := s.repomanager.Items(s.db)

	if err := repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error deleting item: %w", err)
	}
	return nil
}

// GetRandomStorageKey builds a date-prefixed object key for a new attachment.
func GetRandomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("users/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *ItemService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// CreateAttachmentUploadURL mints a presigned PUT URL for the item's
// attachment and records the storage key on the item. Ownership is checked
// first; a wrong owner yields common.ErrorNotFound before any presigning.
func (s *ItemService) CreateAttachmentUploadURL(ctx context.Context, userID, itemID string) (string, string, error) {
	repo := s.repomanager.Items(s.db)

	if _, err := repo.GetByIDAndUser(ctx, itemID, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", "", common.ErrorNotFound
		}
		return "", "", fmt.Errorf("error fetching item: %w", err)
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := GetRandomStorageKey()

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignURLValidity))
	if err != nil {
		return "", "", err
	}

	if err := repo.SetAttachmentKey(ctx, itemID, userID, key); err != nil {
		return "", "", fmt.Errorf("error saving attachment key: %w", err)
	}

	return key, req.URL, nil
}

// GetAttachmentDownloadURL mints a presigned GET URL for the item's stored
// attachment. Items without an attachment behave like missing items.
func (s *ItemService) GetAttachmentDownloadURL(ctx context.Context, userID, itemID string) (string, error) {
	repo := s.repomanager.Items(s.db)

	item, err := repo.GetByIDAndUser(ctx, itemID, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("error fetching item: %w", err)
	}
	if item.AttachmentKey == "" {
		return "", common.ErrorNotFound
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &item.AttachmentKey,
	}, s3.WithPresignExpires(presignURLValidity))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
