package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/VidaFitCoaching01/coach-backoffice/internal/config"
)

// SigV4 rechaza en el GET cualquier X-Amz-Expires por encima de 7 días
// (el presign en sí no lo valida), así que este es el máximo real. Las
// filas de archivo guardan la clave del objeto y la URL se refresca bajo
// demanda cuando la persistida caduca.
const signedURLTTL = 7 * 24 * time.Hour

type Storage struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

func New(cfg *config.Config) *Storage {
	client := s3.New(s3.Options{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
		BaseEndpoint: aws.String(cfg.S3Endpoint),
		UsePathStyle: true,
	})

	return &Storage{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.S3Bucket,
	}
}

// ObjectKey construye la ruta con namespace por cliente y nombre basado
// en timestamp (anticolisión por tiempo, no por hash de contenido).
func ObjectKey(clientID string, now time.Time, fileName string) string {
	return fmt.Sprintf("%s/%d-%s", clientID, now.UnixNano(), fileName)
}

func ThumbKey(clientID string, now time.Time, fileName string) string {
	return fmt.Sprintf("%s/thumbs/%d-%s.webp", clientID, now.UnixNano(), fileName)
}

func (s *Storage) Upload(
	ctx context.Context,
	key string,
	contentType string,
	body io.Reader,
) error {

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	return err
}

// SignedURL emite la URL GET de larga duración que se persiste en la
// fila de metadatos.
func (s *Storage) SignedURL(ctx context.Context, key string) (string, error) {
	out, err := s.presign.PresignGetObject(ctx,
		&s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		},
		s3.WithPresignExpires(signedURLTTL),
	)
	if err != nil {
		return "", err
	}
	return out.URL, nil
}

// DeletePrefix borra todos los blobs bajo un prefijo (cascade del
// borrado de cliente). Pagina de 1000 en 1000 como exige la API.
func (s *Storage) DeletePrefix(ctx context.Context, prefix string) error {
	var token *string

	for {
		list, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return err
		}

		if len(list.Contents) > 0 {
			objects := make([]types.ObjectIdentifier, 0, len(list.Contents))
			for _, obj := range list.Contents {
				objects = append(objects, types.ObjectIdentifier{Key: obj.Key})
			}

			if _, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
				Bucket: aws.String(s.bucket),
				Delete: &types.Delete{Objects: objects},
			}); err != nil {
				return err
			}
		}

		if list.IsTruncated == nil || !*list.IsTruncated {
			return nil
		}
		token = list.NextContinuationToken
	}
}
