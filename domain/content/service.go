package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Triaksa-Space/be-landing-cms/pkg/logger"
	"github.com/Triaksa-Space/be-landing-cms/pkg/pagecache"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

var (
	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("admin privileges required")
	ErrValidation   = errors.New("invalid content update")
	ErrNotFound     = errors.New("content not found")
	ErrStorageWrite = errors.New("content write failed")
	ErrAuthzCheck   = errors.New("admin check failed")
)

// ValidationError names the offending request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Service applies admin edits to landing page content and keeps the page
// cache coherent.
type Service struct {
	store       Store
	authz       AdminChecker
	invalidator pagecache.Invalidator
	policy      *bluemonday.Policy
}

func NewService(store Store, authz AdminChecker, invalidator pagecache.Invalidator) *Service {
	return &Service{
		store:       store,
		authz:       authz,
		invalidator: invalidator,
		policy:      newPolicy(),
	}
}

// UpdateOne overwrites one existing field on behalf of actorID.
func (s *Service) UpdateOne(ctx context.Context, u Update, actorID int64) (ContentRow, error) {
	log := logger.FromContext(ctx).WithComponent("landing_content")

	if err := s.authorize(ctx, actorID); err != nil {
		return ContentRow{}, err
	}

	u, err := s.prepare(u)
	if err != nil {
		return ContentRow{}, err
	}

	row, err := s.apply(ctx, u, actorID)
	if err != nil {
		return ContentRow{}, err
	}

	s.invalidate(ctx, log)
	log.Info("Landing page content updated",
		logger.Section(string(u.Section)), logger.ContentKey(u.Key), logger.UserID(actorID))
	return row, nil
}

// UpdateMany applies every update independently, in order. A failing item
// does not stop or roll back the others. The cache is invalidated once, after
// all items ran, when at least one succeeded.
func (s *Service) UpdateMany(ctx context.Context, updates []Update, actorID int64) (BulkResult, error) {
	log := logger.FromContext(ctx).WithComponent("landing_content")

	if err := s.authorize(ctx, actorID); err != nil {
		return BulkResult{}, err
	}
	if len(updates) == 0 {
		return BulkResult{}, &ValidationError{Field: "updates", Message: "at least one update is required"}
	}

	result := BulkResult{
		Succeeded: make([]ContentRow, 0, len(updates)),
		Failed:    []ItemError{},
	}
	for _, u := range updates {
		prepared, err := s.prepare(u)
		if err == nil {
			var row ContentRow
			row, err = s.apply(ctx, prepared, actorID)
			if err == nil {
				result.Succeeded = append(result.Succeeded, row)
				continue
			}
		}
		result.Failed = append(result.Failed, ItemError{
			Section: u.Section,
			Key:     u.Key,
			Error:   err.Error(),
			err:     err,
		})
	}

	if len(result.Succeeded) > 0 {
		s.invalidate(ctx, log)
	}

	log.Info("Landing page bulk update finished",
		logger.SucceededCount(len(result.Succeeded)),
		logger.FailedCount(len(result.Failed)),
		logger.UserID(actorID),
	)
	return result, nil
}

func (s *Service) authorize(ctx context.Context, actorID int64) error {
	if actorID <= 0 {
		return ErrUnauthorized
	}
	ok, err := s.authz.IsAdmin(ctx, actorID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAuthzCheck, err)
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

func (s *Service) prepare(u Update) (Update, error) {
	u.Section = Section(strings.TrimSpace(string(u.Section)))
	u.Key = strings.TrimSpace(u.Key)
	switch {
	case u.Section == "":
		return u, &ValidationError{Field: "section", Message: "is required"}
	case u.Key == "":
		return u, &ValidationError{Field: "key", Message: "is required"}
	case strings.TrimSpace(u.Value) == "":
		return u, &ValidationError{Field: "value", Message: "is required"}
	case !u.Section.Valid():
		return u, &ValidationError{Field: "section", Message: fmt.Sprintf("unknown section %q", u.Section)}
	}

	if !s.allowed(u.Value) {
		return u, &ValidationError{Field: "value", Message: "contains markup that is not allowed"}
	}
	return u, nil
}

func (s *Service) apply(ctx context.Context, u Update, actorID int64) (ContentRow, error) {
	res, err := s.store.Update(ctx, u.Section, u.Key, u.Value, actorID)
	if err != nil {
		return ContentRow{}, fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}
	if res.Status == StatusNotFound {
		return ContentRow{}, fmt.Errorf("%w: %s.%s", ErrNotFound, u.Section, u.Key)
	}
	return res.Row, nil
}

// invalidate drops the cached landing page. The local cache cannot fail, so
// an error here only means peers did not hear about it and will catch up on
// their own revalidation window.
func (s *Service) invalidate(ctx context.Context, log logger.Logger) {
	if err := s.invalidator.InvalidateTag(ctx, CacheTag); err != nil {
		log.Error("Failed to invalidate landing page cache", err, logger.Tag(CacheTag))
	}
}

// allowed reports whether value can be stored as is. Values are never
// rewritten: plain text always passes, and markup passes only when the rich
// text policy would keep it intact up to entity escaping.
func (s *Service) allowed(value string) bool {
	if !hasMarkup(value) {
		return true
	}
	clean := s.policy.Sanitize(value)
	return html.UnescapeString(clean) == html.UnescapeString(value)
}

// hasMarkup reports whether value contains an HTML tag, comment or doctype.
// A bare "<" or ">" in prose, as in "a<b" or "Use <3", is text.
func hasMarkup(value string) bool {
	z := html.NewTokenizer(strings.NewReader(value))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken,
			html.CommentToken, html.DoctypeToken:
			return true
		}
	}
}

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("h1", "h2", "h3", "h4", "h5", "h6", "span", "br")
	p.AllowAttrs("class").OnElements("p", "span", "div", "h1", "h2", "h3", "h4", "h5", "h6", "ul", "ol", "li")
	p.AllowElements("strong", "em", "u", "s", "sub", "sup")
	p.AllowAttrs("href", "target", "rel").OnElements("a")
	p.AllowRelativeURLs(true)
	p.RequireNoFollowOnLinks(false)
	return p
}
