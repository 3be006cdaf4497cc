package contracts

import "context"

// DatasetProvider hands out the current dataset
// ⭐ SSOT: API 핸들러와 스케줄 작업은 이 인터페이스로만 데이터셋에 접근
type DatasetProvider interface {
	// Dataset returns the cached dataset, loading it on first use
	Dataset(ctx context.Context) (*Dataset, error)

	// Reload drops the cached dataset and loads it again
	Reload(ctx context.Context) (*Dataset, error)
}
