package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ospinae/termledger/internal/common"
	"github.com/ospinae/termledger/internal/server/authz"
	sc "github.com/ospinae/termledger/internal/server/config"
	"github.com/ospinae/termledger/internal/server/models"
	"github.com/ospinae/termledger/internal/server/repositories/repomanager"
)

// Seams for the AWS client chain, swapped out in tests.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// ArchiveService exports audit-log date ranges as CSV to S3-compatible
// storage, the offsite copy auditors pull from. The upload goes through
// the server; auditors only ever receive a short-lived presigned GET URL.
type ArchiveService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	checker     *authz.Checker
	config      *sc.Config
}

func NewArchiveService(db *sql.DB, m repomanager.RepositoryManager, checker *authz.Checker, config *sc.Config) *ArchiveService {
	return &ArchiveService{db: db, repomanager: m, checker: checker, config: config}
}

// ArchiveStorageKey returns a fresh object key under the audit/ prefix,
// partitioned by year and month of the export moment.
func ArchiveStorageKey() string {
	d := timeNow()
	return fmt.Sprintf("audit/%d/%d/%v.csv", d.Year(), int(d.Month()), uuid.New())
}

func (s *ArchiveService) getS3Client() (*s3.Client, error) {
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

	return client, nil
}

// renderCSV renders audit rows with a header line. Timestamps are RFC 3339
// in UTC so exports from differently configured hosts compare cleanly.
func renderCSV(entries []*models.AuditLog) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"id", "event_stamp", "user_id", "action", "entity", "entity_id", "details", "computer_name"}); err != nil {
		return nil, err
	}

	for _, e := range entries {
		record := []string{
			strconv.FormatInt(e.ID, 10),
			e.EventStamp.UTC().Format(time.RFC3339),
			strconv.FormatInt(e.UserID, 10),
			e.Action,
			e.Entity,
			strconv.FormatInt(e.EntityID, 10),
			e.Details,
			e.ComputerName,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Export uploads the audit rows stamped in [from, to) as one CSV object
// and returns the object key plus a presigned GET URL valid for 15
// minutes. Only an active ROOT actor may export.
func (s *ArchiveService) Export(ctx context.Context, actorID int64, from, to time.Time) (string, string, error) {
	if !from.Before(to) {
		return "", "", fmt.Errorf("%w: export range start must precede end", common.ErrValidation)
	}

	if _, err := s.checker.Check(ctx, s.db, actorID, models.RoleRoot); err != nil {
		return "", "", err
	}

	entries, err := s.repomanager.AuditLogs(s.db).ListRange(ctx, from, to)
	if err != nil {
		return "", "", err
	}

	body, err := renderCSV(entries)
	if err != nil {
		return "", "", fmt.Errorf("rendering audit csv: %w", err)
	}

	client, err := s.getS3Client()
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := ArchiveStorageKey()
	contentType := "text/csv"

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: &contentType,
	})
	if err != nil {
		return "", "", fmt.Errorf("uploading audit archive: %w", err)
	}

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", "", fmt.Errorf("presigning audit archive: %w", err)
	}

	return key, req.URL, nil
}
