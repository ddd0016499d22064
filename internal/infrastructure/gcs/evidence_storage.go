// Package gcs adapta Cloud Storage como almacén de evidencia de mermas.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/javrojas/Almacen-api/internal/application/stock"
)

var _ stock.EvidenceStorage = (*EvidenceStorage)(nil)

// EvidenceStorage guarda archivos de evidencia en un bucket GCS.
type EvidenceStorage struct {
	client          *storage.Client
	bucket          string
	signedURLExpiry time.Duration
}

// NewEvidenceStorage construye el adaptador. expiry acota la vigencia
// de las URLs firmadas.
func NewEvidenceStorage(client *storage.Client, bucket string, expiry time.Duration) (*EvidenceStorage, error) {
	b := strings.TrimSpace(bucket)
	if b == "" {
		return nil, errors.New("gcs: bucket vacío")
	}
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	return &EvidenceStorage{client: client, bucket: b, signedURLExpiry: expiry}, nil
}

// Upload escribe el objeto. Sobrescribe si ya existe.
func (s *EvidenceStorage) Upload(ctx context.Context, objectPath, contentType string, data []byte) error {
	obj := strings.TrimLeft(strings.TrimSpace(objectPath), "/")
	if obj == "" {
		return fmt.Errorf("gcs: objectPath inválido: %q", objectPath)
	}
	w := s.client.Bucket(s.bucket).Object(obj).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("gcs: escribir %s: %w", obj, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs: cerrar %s: %w", obj, err)
	}
	return nil
}

// SignedURL firma una URL de lectura temporal para el objeto.
func (s *EvidenceStorage) SignedURL(objectPath string) (string, error) {
	url, err := s.client.Bucket(s.bucket).SignedURL(objectPath, &storage.SignedURLOptions{
		Method:  "GET",
		Expires: time.Now().Add(s.signedURLExpiry),
	})
	if err != nil {
		return "", fmt.Errorf("gcs: firmar URL de %s: %w", objectPath, err)
	}
	return url, nil
}

// List devuelve las rutas de objeto bajo un prefijo.
func (s *EvidenceStorage) List(ctx context.Context, prefix string) ([]string, error) {
	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{Prefix: prefix})
	var paths []string
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("gcs: listar %s: %w", prefix, err)
		}
		paths = append(paths, attrs.Name)
	}
	return paths, nil
}
