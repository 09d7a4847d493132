package identity

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/chirpnet/feed-service/internal/model"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// The directory rejects larger batches, so one feed assembly never asks for
// more than this many identities.
const MAX_BATCH_SIZE = 100

var ErrUnavailable = errors.New("identity directory unavailable")

// Directory is the identity directory of record for user profile data. A
// GetUserList response may silently omit ids the directory does not
// recognize; callers must treat a missing entry as "author unknown".
type Directory interface {
	GetUserList(ctx context.Context, ids []string) ([]model.Author, error)
	GetUserByUsername(ctx context.Context, username string) (*model.Author, error)
}

type Client struct {
	logger     *zap.Logger
	httpClient *http.Client
}

func NewClient(logger *zap.Logger) *Client {
	return &Client{
		logger:     logger,
		httpClient: &http.Client{Timeout: time.Second * 10},
	}
}

type userRecord struct {
	ID              string  `json:"id"`
	Username        *string `json:"username"`
	ProfileImageURL string  `json:"profile_image_url"`
}

func (c *Client) GetUserList(ctx context.Context, ids []string) ([]model.Author, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > MAX_BATCH_SIZE {
		ids = ids[:MAX_BATCH_SIZE]
	}

	query := url.Values{}
	for _, id := range ids {
		query.Add("user_id", id)
	}
	query.Set("limit", strconv.Itoa(MAX_BATCH_SIZE))

	records, err := c.getUsers(ctx, query)
	if err != nil {
		return nil, err
	}

	authors := make([]model.Author, 0, len(records))
	for _, record := range records {
		author, err := record.toAuthor()
		if err != nil {
			return nil, err
		}
		authors = append(authors, *author)
	}

	return authors, nil
}

func (c *Client) GetUserByUsername(ctx context.Context, username string) (*model.Author, error) {
	query := url.Values{}
	query.Set("username", username)
	query.Set("limit", "1")

	records, err := c.getUsers(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	return records[0].toAuthor()
}

func (c *Client) getUsers(ctx context.Context, query url.Values) ([]userRecord, error) {
	endpoint := "/users"
	url := viper.GetString("identity.origin") + endpoint + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Sugar().Errorf("failed to create request to identity directory: %s", err.Error())
		return nil, ErrUnavailable
	}

	req.Header.Add("Authorization", "Bearer "+os.Getenv("IDENTITY_API_KEY"))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Sugar().Errorf("failed to send request to identity directory: %s", err.Error())
		return nil, ErrUnavailable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Sugar().Errorf("failed to read response body from identity directory: %s", err.Error())
		return nil, ErrUnavailable
	}

	if resp.StatusCode != http.StatusOK {
		var bodyJSON map[string]interface{}
		if err := json.Unmarshal(body, &bodyJSON); err != nil {
			c.logger.Sugar().Errorf("failed to decode error response from identity directory: %s", err.Error())
		} else {
			c.logger.Sugar().Errorf("ERROR from identity directory endpoint(%s), code(%d), details: %s", endpoint, resp.StatusCode, bodyJSON["details"])
		}
		return nil, ErrUnavailable
	}

	var records []userRecord
	if err := json.Unmarshal(body, &records); err != nil {
		c.logger.Sugar().Errorf("failed to decode user list from identity directory: %s", err.Error())
		return nil, ErrUnavailable
	}

	return records, nil
}

func (r userRecord) toAuthor() (*model.Author, error) {
	if r.ID == "" {
		return nil, ErrUnavailable
	}

	return &model.Author{
		ID:              r.ID,
		Username:        r.Username,
		ProfileImageURL: r.ProfileImageURL,
	}, nil
}
