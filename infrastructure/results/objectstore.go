/*
 * © 2026 Snyk Limited
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package results

import (
	"context"
	"io"
	"net/http"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"

	"github.com/snyk/findings-engine/application/config"
	"github.com/snyk/findings-engine/internal/types"
)

type minioPayloadStore struct {
	c      *config.Config
	client *minio.Client
	bucket string
}

// NewMinioPayloadStore connects to the S3 compatible bucket configured in c.ObjectStore().
func NewMinioPayloadStore(c *config.Config) (PayloadStore, error) {
	settings := c.ObjectStore()
	if !settings.Enabled() {
		return nil, errors.New("object store is not configured")
	}
	client, err := minio.New(settings.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(settings.AccessKey, settings.SecretKey, ""),
		Secure: settings.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "couldn't create object store client")
	}
	return &minioPayloadStore{c: c, client: client, bucket: settings.Bucket}, nil
}

func (s *minioPayloadStore) Payload(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.translate(err, key)
	}
	defer func() { _ = obj.Close() }()

	payload, err := io.ReadAll(obj)
	if err != nil {
		return nil, s.translate(err, key)
	}
	s.c.Logger().Debug().Str("method", "Payload").Str("key", key).Int("bytes", len(payload)).Msg("payload fetched")
	return payload, nil
}

func (s *minioPayloadStore) translate(err error, key string) error {
	response := minio.ToErrorResponse(err)
	if response.Code == "NoSuchKey" || response.StatusCode == http.StatusNotFound {
		return errors.Wrapf(types.ErrPluginResultNotAvailable, "payload %s/%s", s.bucket, key)
	}
	return errors.Wrapf(err, "couldn't fetch payload %s/%s", s.bucket, key)
}
