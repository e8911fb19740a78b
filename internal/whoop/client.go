package whoop

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

const (
	recoveryPath = "/v1/recovery"
	sleepPath    = "/v1/activity/sleep"
	cyclePath    = "/v1/cycle"

	pageLimit = 25

	// a sync run hits the same collection URLs over and over when triggered
	// manually, cache the raw responses for a bit
	apiCacheExpireSeconds = 10 * 60
	apiCacheSizeBytes     = 512 * 1024
)

type tokensRepo interface {
	SaveToken(ctx context.Context, token *oauth2.Token) error
	GetToken(ctx context.Context) (*oauth2.Token, error)
}

// Client talks to the WHOOP developer API on behalf of the single
// connected athlete. The OAuth token lives in the database so the
// connection survives restarts.
type Client struct {
	apiBaseURL string
	oauthConf  *oauth2.Config
	tokens     tokensRepo
	httpClient *http.Client
	cache      *freecache.Cache
}

type NewClientParams struct {
	APIBaseURL   string
	ClientID     string
	ClientSecret string
	AuthURL      string
	TokenURL     string
	RedirectURL  string
	Tokens       tokensRepo
	HTTPClient   *http.Client
}

func NewClient(params NewClientParams) *Client {
	httpClient := params.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		apiBaseURL: params.APIBaseURL,
		oauthConf: &oauth2.Config{
			ClientID:     params.ClientID,
			ClientSecret: params.ClientSecret,
			RedirectURL:  params.RedirectURL,
			Scopes:       []string{"read:recovery", "read:sleep", "read:cycles", "offline"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  params.AuthURL,
				TokenURL: params.TokenURL,
			},
		},
		tokens:     params.Tokens,
		httpClient: httpClient,
		cache:      freecache.NewCache(apiCacheSizeBytes),
	}
}

// AuthCodeURL returns the WHOOP consent page URL for the given state.
func (c *Client) AuthCodeURL(state string) string {
	return c.oauthConf.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades the authorization code for a token and persists it.
func (c *Client) Exchange(ctx context.Context, code string) error {
	token, err := c.oauthConf.Exchange(c.oauthContext(ctx), code)
	if err != nil {
		return fmt.Errorf("exchange code: %w", err)
	}
	if err := c.tokens.SaveToken(ctx, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// Connected reports whether an OAuth token is stored.
func (c *Client) Connected(ctx context.Context) (bool, error) {
	_, err := c.tokens.GetToken(ctx)
	if err != nil {
		if err == ErrNoToken {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Recoveries fetches the daily recoveries since the given day, joined with
// the sleep performance and day strain from the sleep and cycle collections.
func (c *Client) Recoveries(ctx context.Context, since time.Time) ([]Recovery, error) {
	apiClient, err := c.apiClient(ctx)
	if err != nil {
		return nil, err
	}

	recoveryRecords, err := c.recoveryRecords(ctx, apiClient, since)
	if err != nil {
		return nil, fmt.Errorf("fetch recoveries: %w", err)
	}
	if len(recoveryRecords) == 0 {
		return []Recovery{}, nil
	}

	sleepPerformance, err := c.sleepPerformanceByID(ctx, apiClient, since)
	if err != nil {
		// recoveries are still usable without the sleep join
		log.Errorf("whoop: failed to fetch sleep records: %s", err)
	}
	dayStrain, err := c.dayStrainByCycleID(ctx, apiClient, since)
	if err != nil {
		log.Errorf("whoop: failed to fetch cycle records: %s", err)
	}

	now := time.Now()
	recoveries := make([]Recovery, 0, len(recoveryRecords))
	for _, rec := range recoveryRecords {
		if rec.ScoreState != scoreStateScored {
			continue
		}
		recoveries = append(recoveries, Recovery{
			Day:              dayOf(rec.CreatedAt),
			Score:            rec.Score.RecoveryScore,
			HRVMillis:        rec.Score.HRVRmssdMilli,
			RestingHR:        int(rec.Score.RestingHeartRate),
			SleepPerformance: sleepPerformance[rec.SleepID],
			DayStrain:        dayStrain[rec.CycleID],
			SyncedAt:         now,
		})
	}
	return recoveries, nil
}

const scoreStateScored = "SCORED"

type recoveryRecord struct {
	CycleID    int64     `json:"cycle_id"`
	SleepID    int64     `json:"sleep_id"`
	CreatedAt  time.Time `json:"created_at"`
	ScoreState string    `json:"score_state"`
	Score      struct {
		UserCalibrating  bool    `json:"user_calibrating"`
		RecoveryScore    float64 `json:"recovery_score"`
		RestingHeartRate float64 `json:"resting_heart_rate"`
		HRVRmssdMilli    float64 `json:"hrv_rmssd_milli"`
	} `json:"score"`
}

type recoveryPage struct {
	Records   []recoveryRecord `json:"records"`
	NextToken string           `json:"next_token"`
}

type sleepRecord struct {
	ID    int64 `json:"id"`
	Score struct {
		SleepPerformancePercentage float64 `json:"sleep_performance_percentage"`
	} `json:"score"`
}

type sleepPage struct {
	Records   []sleepRecord `json:"records"`
	NextToken string        `json:"next_token"`
}

type cycleRecord struct {
	ID    int64 `json:"id"`
	Score struct {
		Strain float64 `json:"strain"`
	} `json:"score"`
}

type cyclePage struct {
	Records   []cycleRecord `json:"records"`
	NextToken string        `json:"next_token"`
}

func (c *Client) recoveryRecords(
	ctx context.Context,
	apiClient *http.Client,
	since time.Time,
) ([]recoveryRecord, error) {
	var records []recoveryRecord
	nextToken := ""
	for {
		var page recoveryPage
		if err := c.getJSON(
			ctx, apiClient,
			c.collectionURL(recoveryPath, since, nextToken),
			&page,
		); err != nil {
			return nil, err
		}
		records = append(records, page.Records...)
		if page.NextToken == "" {
			return records, nil
		}
		nextToken = page.NextToken
	}
}

func (c *Client) sleepPerformanceByID(
	ctx context.Context,
	apiClient *http.Client,
	since time.Time,
) (map[int64]float64, error) {
	performance := make(map[int64]float64)
	nextToken := ""
	for {
		var page sleepPage
		if err := c.getJSON(
			ctx, apiClient,
			c.collectionURL(sleepPath, since, nextToken),
			&page,
		); err != nil {
			return nil, err
		}
		for _, rec := range page.Records {
			performance[rec.ID] = rec.Score.SleepPerformancePercentage
		}
		if page.NextToken == "" {
			return performance, nil
		}
		nextToken = page.NextToken
	}
}

func (c *Client) dayStrainByCycleID(
	ctx context.Context,
	apiClient *http.Client,
	since time.Time,
) (map[int64]float64, error) {
	strain := make(map[int64]float64)
	nextToken := ""
	for {
		var page cyclePage
		if err := c.getJSON(
			ctx, apiClient,
			c.collectionURL(cyclePath, since, nextToken),
			&page,
		); err != nil {
			return nil, err
		}
		for _, rec := range page.Records {
			strain[rec.ID] = rec.Score.Strain
		}
		if page.NextToken == "" {
			return strain, nil
		}
		nextToken = page.NextToken
	}
}

func (c *Client) collectionURL(path string, since time.Time, nextToken string) string {
	query := url.Values{}
	query.Set("start", since.UTC().Format(time.RFC3339))
	query.Set("limit", fmt.Sprintf("%d", pageLimit))
	if nextToken != "" {
		query.Set("nextToken", nextToken)
	}
	return fmt.Sprintf("%s%s?%s", c.apiBaseURL, path, query.Encode())
}

func (c *Client) getJSON(
	ctx context.Context,
	apiClient *http.Client,
	reqURL string,
	dest any,
) error {
	cacheKey := []byte(reqURL)
	if cachedBytes, err := c.cache.Get(cacheKey); err == nil {
		return json.Unmarshal(cachedBytes, dest)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := apiClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Errorf("whoop api: close response body: %s", err)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("whoop api: unexpected status %d", resp.StatusCode)
	}

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(respBytes, dest); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	if err := c.cache.Set(cacheKey, respBytes, apiCacheExpireSeconds); err != nil {
		log.Errorf("whoop api: cache response: %s", err)
	}
	return nil
}

// apiClient returns an http client with the stored token attached,
// refreshing and persisting it when WHOOP rotates the refresh token.
func (c *Client) apiClient(ctx context.Context) (*http.Client, error) {
	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		return nil, err
	}
	source := &persistingTokenSource{
		ctx:     ctx,
		base:    c.oauthConf.TokenSource(c.oauthContext(ctx), token),
		tokens:  c.tokens,
		current: token,
	}
	return oauth2.NewClient(c.oauthContext(ctx), source), nil
}

func (c *Client) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

// persistingTokenSource saves refreshed tokens back to the repo. WHOOP
// rotates refresh tokens on every refresh, losing one means reconnecting.
type persistingTokenSource struct {
	ctx    context.Context
	base   oauth2.TokenSource
	tokens tokensRepo

	mutex   sync.Mutex
	current *oauth2.Token
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	token, err := s.base.Token()
	if err != nil {
		return nil, err
	}
	if s.current == nil || token.AccessToken != s.current.AccessToken {
		if err := s.tokens.SaveToken(s.ctx, token); err != nil {
			log.Errorf("whoop: failed to save refreshed token: %s", err)
		}
		s.current = token
	}
	return token, nil
}

func dayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
