package images

import (
	"context"
	"errors"
	"io"
	"strings"

	myErr "vehiql-main/internal/types/errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const bucketName = "car_images"

// GridFSStore - картинки в MongoDB GridFS
type GridFSStore struct {
	Bucket    *gridfs.Bucket
	PublicURL string
	Logger    *zap.SugaredLogger
}

func NewGridFSStore(db *mongo.Database, publicURL string, l *zap.SugaredLogger) (*GridFSStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		return nil, err
	}

	return &GridFSStore{
		Bucket:    bucket,
		PublicURL: strings.TrimRight(publicURL, "/"),
		Logger:    l,
	}, nil
}

// URLFor строит публичную ссылку, по которой картинку отдает GET /api/images/{id}
func (s *GridFSStore) URLFor(id string) string {
	return s.PublicURL + "/api/images/" + id
}

func (s *GridFSStore) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stream, err := s.Bucket.OpenUploadStream(filename)
	if err != nil {
		s.Logger.Errorf("Error opening GridFS upload stream: %v", err)
		return "", myErr.ErrImageStore
	}

	if _, err := io.Copy(stream, r); err != nil {
		_ = stream.Abort() // nolint:errcheck
		s.Logger.Errorf("Error uploading image %s: %v", filename, err)
		return "", myErr.ErrImageStore
	}

	if err := stream.Close(); err != nil {
		s.Logger.Errorf("Error finishing image upload %s: %v", filename, err)
		return "", myErr.ErrImageStore
	}

	id, ok := stream.FileID.(primitive.ObjectID)
	if !ok {
		return "", myErr.ErrImageStore
	}

	return s.URLFor(id.Hex()), nil
}

func (s *GridFSStore) Open(ctx context.Context, id string) (io.ReadCloser, string, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, "", myErr.ErrNotFound
	}
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	stream, err := s.Bucket.OpenDownloadStream(objID)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, "", myErr.ErrNotFound
		}
		s.Logger.Errorf("Error opening image %s: %v", id, err)
		return nil, "", myErr.ErrImageStore
	}

	name := ""
	if f := stream.GetFile(); f != nil {
		name = f.Name
	}

	return stream, name, nil
}

func (s *GridFSStore) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return myErr.ErrNotFound
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.Bucket.Delete(objID); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return myErr.ErrNotFound
		}
		s.Logger.Errorf("Error deleting image %s: %v", id, err)
		return myErr.ErrImageStore
	}

	return nil
}
