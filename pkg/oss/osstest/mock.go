// Package osstest 提供 BlobStore 的 testify mock
package osstest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"MediaHub.com/pkg/oss"
)

type MockBlobStore struct {
	mock.Mock
}

var _ oss.BlobStore = (*MockBlobStore)(nil)

func (m *MockBlobStore) Put(ctx context.Context, localPath string) *oss.Blob {
	args := m.Called(ctx, localPath)
	if b := args.Get(0); b != nil {
		return b.(*oss.Blob)
	}
	return nil
}

func (m *MockBlobStore) Delete(ctx context.Context, id string) bool {
	return m.Called(ctx, id).Bool(0)
}
