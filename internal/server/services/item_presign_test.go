package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
)

func stubPresignSeams(t *testing.T, putURL, getURL string) {
	t.Helper()

	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	origNewPre := newS3PresignClient
	origPut := presignPutObject
	origGet := presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
		presignPutObject = origPut
		presignGetObject = origGet
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return nil
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return nil
	}
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return &v4.PresignedHTTPRequest{URL: putURL}, nil
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return &v4.PresignedHTTPRequest{URL: getURL}, nil
	}
}

func TestGetRandomStorageKey_Format(t *testing.T) {
	a := GetRandomStorageKey()
	b := GetRandomStorageKey()

	if !strings.HasPrefix(a, "users/") {
		t.Fatalf("unexpected key format: %q", a)
	}
	if a == b {
		t.Fatalf("keys must be unique, got %q twice", a)
	}
}

func TestCreateAttachmentUploadURL_Success(t *testing.T) {
	stubPresignSeams(t, "http://presigned/put", "http://presigned/get")

	repo := &fakeItemRepo{rows: map[string]*models.Item{
		itemKey("i-1", "u-1"): {ID: "i-1", UserID: "u-1"},
	}}
	svc := newItemService(repo)

	key, url, err := svc.CreateAttachmentUploadURL(context.Background(), "u-1", "i-1")
	if err != nil {
		t.Fatalf("CreateAttachmentUploadURL error: %v", err)
	}
	if url != "http://presigned/put" {
		t.Fatalf("unexpected url: %q", url)
	}
	if key == "" || repo.setKey != key {
		t.Fatalf("storage key not recorded: key=%q recorded=%q", key, repo.setKey)
	}
}

func TestCreateAttachmentUploadURL_CrossOwnerIsNotFound(t *testing.T) {
	presignCalled := false

	stubPresignSeams(t, "http://presigned/put", "http://presigned/get")
	origPut := presignPutObject
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		presignCalled = true
		return origPut(pc, ctx, in, optFns...)
	}

	repo := &fakeItemRepo{rows: map[string]*models.Item{
		itemKey("i-1", "u-1"): {ID: "i-1", UserID: "u-1"},
	}}
	svc := newItemService(repo)

	_, _, err := svc.CreateAttachmentUploadURL(context.Background(), "u-other", "i-1")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
	if presignCalled {
		t.Fatal("presigning must not happen for a foreign item")
	}
}

func TestGetAttachmentDownloadURL_Success(t *testing.T) {
	stubPresignSeams(t, "http://presigned/put", "http://presigned/get")

	repo := &fakeItemRepo{rows: map[string]*models.Item{
		itemKey("i-1", "u-1"): {ID: "i-1", UserID: "u-1", AttachmentKey: "users/2025/6/1/key"},
	}}
	svc := newItemService(repo)

	url, err := svc.GetAttachmentDownloadURL(context.Background(), "u-1", "i-1")
	if err != nil {
		t.Fatalf("GetAttachmentDownloadURL error: %v", err)
	}
	if url != "http://presigned/get" {
		t.Fatalf("unexpected url: %q", url)
	}
}

func TestGetAttachmentDownloadURL_NoAttachment(t *testing.T) {
	stubPresignSeams(t, "http://presigned/put", "http://presigned/get")

	repo := &fakeItemRepo{rows: map[string]*models.Item{
		itemKey("i-1", "u-1"): {ID: "i-1", UserID: "u-1", AttachmentKey: ""},
	}}
	svc := newItemService(repo)

	_, err := svc.GetAttachmentDownloadURL(context.Background(), "u-1", "i-1")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}
