// internal/questions/primary.go
package questions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "transparency-service/internal/common/errors"
	httpclient "transparency-service/internal/common/http"
	"transparency-service/internal/common/logger"
	"transparency-service/internal/common/validation"
	"transparency-service/internal/models"
)

const primaryServiceName = "primary"

// primaryResponseSchema pins the structured contract: a non-empty list of
// strings under "questions". Anything else is a malformed response.
const primaryResponseSchema = `{
	"type": "object",
	"properties": {
		"questions": {
			"type": "array",
			"items": {"type": "string"},
			"minItems": 1
		}
	},
	"required": ["questions"]
}`

// PrimaryClient calls the structured question-generation service.
type PrimaryClient struct {
	baseURL string
	client  *httpclient.Client
	logger  logger.Logger
}

func NewPrimaryClient(baseURL string, timeout time.Duration, log logger.Logger) *PrimaryClient {
	return &PrimaryClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpclient.NewClient(timeout),
		logger:  log.WithFields(map[string]interface{}{"upstream": primaryServiceName}),
	}
}

func (c *PrimaryClient) Name() string { return primaryServiceName }

func (c *PrimaryClient) Origin() models.QuestionOrigin { return models.OriginPrimary }

func (c *PrimaryClient) Attempt(ctx context.Context, info models.ProductInfo) ([]string, error) {
	requestBody := map[string]interface{}{
		"product_info": strings.TrimSpace(info.ProductName + " " + info.Description),
		"category":     string(info.Category),
		"brand_name":   info.BrandName,
		"product_name": info.ProductName,
	}

	body, _ := json.Marshal(requestBody)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate-questions", bytes.NewBuffer(body))
	if err != nil {
		return nil, apperrors.NewUpstreamUnavailableError(primaryServiceName, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamUnavailableError(primaryServiceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewUpstreamUnavailableError(primaryServiceName,
			fmt.Errorf("status %d", resp.StatusCode))
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewUpstreamUnavailableError(primaryServiceName, err)
	}

	violations, err := validation.Validate(primaryResponseSchema, payload)
	if err != nil {
		return nil, apperrors.NewMalformedUpstreamError(primaryServiceName, err.Error())
	}
	if len(violations) > 0 {
		return nil, apperrors.NewMalformedUpstreamError(primaryServiceName, validation.Describe(violations))
	}

	var apiResponse struct {
		Questions []string `json:"questions"`
	}
	if err := json.Unmarshal(payload, &apiResponse); err != nil {
		return nil, apperrors.NewMalformedUpstreamError(primaryServiceName, err.Error())
	}

	for i, q := range apiResponse.Questions {
		if strings.TrimSpace(q) == "" {
			return nil, apperrors.NewMalformedUpstreamError(primaryServiceName,
				fmt.Sprintf("empty question at index %d", i))
		}
	}

	c.logger.Debug("primary generation succeeded", map[string]interface{}{
		"questionCount": len(apiResponse.Questions),
	})

	return apiResponse.Questions, nil
}
