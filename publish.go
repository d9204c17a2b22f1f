package md2card

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/alnah/go-md2card/internal/fileutil"
)

// MaxTitleRunes is the platform limit on note titles, counted in
// characters (titles are predominantly CJK).
const MaxTitleRunes = 20

// Post is an image note handed to the publish collaborator.
type Post struct {
	Title       string
	Description string
	ImagePaths  []string  // ordered, cover first when present
	Private     bool
	PostTime    time.Time // zero means publish immediately
}

// Receipt identifies a published note.
type Receipt struct {
	PostID string
}

// Publisher posts an ordered set of images with metadata.
type Publisher interface {
	Publish(ctx context.Context, post Post) (*Receipt, error)
}

// TruncateTitle caps a title at MaxTitleRunes characters.
func TruncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) > MaxTitleRunes {
		return string(runes[:MaxTitleRunes])
	}
	return title
}

// ParseCookie splits a browser cookie string into a key-value map.
func ParseCookie(cookie string) map[string]string {
	fields := map[string]string{}
	for _, item := range strings.Split(cookie, ";") {
		if key, value, ok := strings.Cut(strings.TrimSpace(item), "="); ok {
			fields[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
	}
	return fields
}

// ValidateCookie checks that the cookie carries the fields the signing
// backend needs. Returns ErrCookieIncomplete naming the missing fields.
func ValidateCookie(cookie string) error {
	fields := ParseCookie(cookie)
	var missing []string
	for _, required := range []string{"a1", "web_session"} {
		if _, ok := fields[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrCookieIncomplete, strings.Join(missing, ", "))
	}
	return nil
}

// publishSessionID names the API-side session this client initializes.
const publishSessionID = "md2card_session"

// publishTimeout bounds every API round trip; image uploads are slow.
const publishTimeout = 120 * time.Second

// APIPublisher publishes image notes through the companion API service.
// Call Init once before Publish.
type APIPublisher struct {
	client *resty.Client
	cookie string
}

// NewAPIPublisher creates a publisher against the given API base URL.
func NewAPIPublisher(baseURL, cookie string) *APIPublisher {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(publishTimeout).
		SetHeader("Content-Type", "application/json")
	return &APIPublisher{client: client, cookie: cookie}
}

// apiResponse is the service's response envelope.
type apiResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
	Result struct {
		NoteID string `json:"note_id"`
		ID     string `json:"id"`
	} `json:"result"`
}

// Init health-checks the API service and opens a signing session with the
// cookie. An incomplete cookie fails fast before any network round trip.
func (p *APIPublisher) Init(ctx context.Context) error {
	if err := ValidateCookie(p.cookie); err != nil {
		return err
	}

	resp, err := p.client.R().
		SetContext(ctx).
		Get("/health")
	if err != nil || resp.StatusCode() != 200 {
		return fmt.Errorf("%w: %s", ErrPublishUnavailable, p.client.BaseURL)
	}

	var out apiResponse
	resp, err = p.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"session_id": publishSessionID,
			"cookie":     p.cookie,
		}).
		SetResult(&out).
		Post("/init")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSessionInit, err)
	}
	if resp.StatusCode() != 200 || (out.Status != "success" && out.Status != "warning") {
		return fmt.Errorf("%w: %s", ErrSessionInit, out.Error)
	}
	return nil
}

// Publish posts an image note. The title is truncated to MaxTitleRunes
// before handoff and every image path must exist on disk.
func (p *APIPublisher) Publish(ctx context.Context, post Post) (*Receipt, error) {
	if len(post.ImagePaths) == 0 {
		return nil, ErrNoImages
	}
	for _, path := range post.ImagePaths {
		if !fileutil.FileExists(path) {
			return nil, fmt.Errorf("%w: %s", ErrNoImages, path)
		}
	}

	payload := map[string]any{
		"session_id": publishSessionID,
		"title":      TruncateTitle(post.Title),
		"desc":       post.Description,
		"files":      post.ImagePaths,
		"is_private": post.Private,
	}
	if !post.PostTime.IsZero() {
		payload["post_time"] = post.PostTime.Format("2006-01-02 15:04:05")
	}

	var out apiResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&out).
		Post("/publish/image")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}
	if resp.StatusCode() != 200 || out.Status != "success" {
		return nil, fmt.Errorf("%w: %s", ErrPublishFailed, out.Error)
	}

	noteID := out.Result.NoteID
	if noteID == "" {
		noteID = out.Result.ID
	}
	return &Receipt{PostID: noteID}, nil
}

// Compile-time interface check.
var _ Publisher = (*APIPublisher)(nil)
