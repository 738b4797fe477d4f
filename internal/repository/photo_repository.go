package repository

import (
	"io"
	"mime/multipart"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
)

// PhotoRepository stores uploaded listing photos in GridFS. Listings only
// keep the returned URL, so photo storage stays opaque to the SQL layer.
type PhotoRepository struct {
	db *mongo.Database
}

func NewPhotoRepository(client *mongo.Client, dbName string) *PhotoRepository {
	return &PhotoRepository{db: client.Database(dbName)}
}

// Upload streams the file into GridFS and returns the stored object id.
func (r *PhotoRepository) Upload(file multipart.File, filename string) (string, error) {
	bucket, err := gridfs.NewBucket(r.db)
	if err != nil {
		return "", err
	}

	stream, err := bucket.OpenUploadStream(filename)
	if err != nil {
		return "", err
	}
	defer stream.Close()

	if _, err := io.Copy(stream, file); err != nil {
		return "", err
	}
	return stream.FileID.(primitive.ObjectID).Hex(), nil
}

// Download reads a stored photo back by its object id.
func (r *PhotoRepository) Download(photoID string) ([]byte, error) {
	bucket, err := gridfs.NewBucket(r.db)
	if err != nil {
		return nil, err
	}

	objID, err := primitive.ObjectIDFromHex(photoID)
	if err != nil {
		return nil, err
	}

	stream, err := bucket.OpenDownloadStream(objID)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	return io.ReadAll(stream)
}
