package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"carenest/reviews-service/internal/app/reviews/entity"
)

// CatalogClient клиент для взаимодействия с Catalog Service.
// Используется для проверки существования цели перед созданием отзыва.
type CatalogClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCatalogClient создает новый клиент для Catalog Service
func NewCatalogClient(baseURL string) *CatalogClient {
	return &CatalogClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// TargetExists проверяет, существует ли врач или няня с данным ID.
// 404 от Catalog Service означает "цели нет", любой другой не-200 статус - ошибка.
func (c *CatalogClient) TargetExists(ctx context.Context, kind string, targetID int64) (bool, error) {
	var url string
	switch kind {
	case entity.TargetDoctor:
		url = fmt.Sprintf("%s/doctors/%d", c.baseURL, targetID)
	case entity.TargetNanny:
		url = fmt.Sprintf("%s/nannies/%d", c.baseURL, targetID)
	default:
		return false, fmt.Errorf("unknown target kind: %s", kind)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to send request to catalog: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("unexpected status code from catalog: %d", resp.StatusCode)
	}
}
