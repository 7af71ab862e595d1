// internal/questions/secondary.go
package questions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	apperrors "transparency-service/internal/common/errors"
	httpclient "transparency-service/internal/common/http"
	"transparency-service/internal/common/logger"
	"transparency-service/internal/models"
)

const (
	secondaryServiceName = "secondary"

	// DefaultSecondaryBaseURL is the hosted endpoint of the free-text model.
	DefaultSecondaryBaseURL = "https://generativelanguage.googleapis.com"

	secondaryModelPath = "/v1beta/models/gemini-1.5-flash:generateContent"

	// maxSecondaryQuestions caps how many candidates are taken from free text.
	maxSecondaryQuestions = 3
)

// SecondaryClient calls the free-text generation service and extracts
// candidate questions line by line from the returned prose.
type SecondaryClient struct {
	baseURL string
	apiKey  string
	client  *httpclient.Client
	logger  logger.Logger
}

func NewSecondaryClient(baseURL, apiKey string, timeout time.Duration, log logger.Logger) *SecondaryClient {
	if baseURL == "" {
		baseURL = DefaultSecondaryBaseURL
	}
	return &SecondaryClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  httpclient.NewClient(timeout),
		logger:  log.WithFields(map[string]interface{}{"upstream": secondaryServiceName}),
	}
}

func (c *SecondaryClient) Name() string { return secondaryServiceName }

func (c *SecondaryClient) Origin() models.QuestionOrigin { return models.OriginSecondary }

func (c *SecondaryClient) buildPrompt(info models.ProductInfo) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("Generate %d insightful, product-transparency questions for a product with the following info.", maxSecondaryQuestions))
	parts = append(parts, "")
	parts = append(parts, fmt.Sprintf("Name: %s", info.ProductName))
	parts = append(parts, fmt.Sprintf("Brand: %s", info.BrandName))
	parts = append(parts, fmt.Sprintf("Category: %s", info.Category))
	parts = append(parts, fmt.Sprintf("Description: %s", info.Description))
	parts = append(parts, "")
	parts = append(parts, "Questions should be clear and specific, aligned with transparency, safety, sourcing, ethics, and health considerations.")

	return strings.Join(parts, "\n")
}

func (c *SecondaryClient) Attempt(ctx context.Context, info models.ProductInfo) ([]string, error) {
	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]string{{"text": c.buildPrompt(info)}}},
		},
	}

	body, _ := json.Marshal(requestBody)
	url := c.baseURL + secondaryModelPath + "?key=" + c.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, apperrors.NewUpstreamUnavailableError(secondaryServiceName, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamUnavailableError(secondaryServiceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewUpstreamUnavailableError(secondaryServiceName,
			fmt.Errorf("status %d", resp.StatusCode))
	}

	var apiResponse struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, apperrors.NewMalformedUpstreamError(secondaryServiceName, err.Error())
	}

	text := ""
	if len(apiResponse.Candidates) > 0 && len(apiResponse.Candidates[0].Content.Parts) > 0 {
		text = apiResponse.Candidates[0].Content.Parts[0].Text
	}

	parsed := ParseCandidateQuestions(text, maxSecondaryQuestions)
	if len(parsed) == 0 {
		return nil, apperrors.NewMalformedUpstreamError(secondaryServiceName, "no usable lines in response text")
	}

	c.logger.Debug("secondary generation succeeded", map[string]interface{}{
		"questionCount": len(parsed),
	})

	return parsed, nil
}
