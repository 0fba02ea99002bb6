package meetapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	meet "google.golang.org/api/meet/v2"
	"google.golang.org/api/option"

	"github.com/teemow/meetpresence/internal/google"
	"github.com/teemow/meetpresence/internal/logging"
)

// spaceGetter fetches a Meet space by resource name. The real
// implementation wraps the Meet service; tests substitute fakes.
type spaceGetter interface {
	get(ctx context.Context, name string) (*meet.Space, error)
}

type meetSpaceGetter struct {
	svc *meet.Service
}

func (g *meetSpaceGetter) get(ctx context.Context, name string) (*meet.Space, error) {
	return g.svc.Spaces.Get(name).Context(ctx).Do()
}

// Source determines meeting presence from the Google Meet API instead of
// the local browser. It reports in-meeting when any of the configured
// spaces has an active conference.
type Source struct {
	getter  spaceGetter
	spaces  []string
	account string
	logger  *slog.Logger
}

// NewSource creates a Meet API presence source for the given account and
// space names. Space names may be bare meeting codes ("abc-defg-hij") or
// full resource names ("spaces/abc-defg-hij").
func NewSource(ctx context.Context, account string, spaces []string) (*Source, error) {
	if len(spaces) == 0 {
		return nil, fmt.Errorf("the meet-api source requires at least one configured space")
	}

	client, err := google.GetHTTPClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", google.GetAuthenticationErrorMessage(account), err)
	}

	svc, err := meet.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Meet service: %w", err)
	}

	return &Source{
		getter:  &meetSpaceGetter{svc: svc},
		spaces:  spaces,
		account: account,
		logger:  logging.WithComponent(slog.Default(), "meetapi"),
	}, nil
}

// InMeeting reports whether any configured space has an active
// conference. Individual space lookups may fail (deleted space, transient
// API error) without failing the whole observation, as long as at least
// one lookup succeeds.
func (s *Source) InMeeting(ctx context.Context) (bool, error) {
	var errs []error
	succeeded := false

	for _, name := range s.spaces {
		space, err := s.getter.get(ctx, normalizeSpaceName(name))
		if err != nil {
			s.logger.Debug("space lookup failed",
				slog.String("space", name), logging.Account(s.account), logging.Err(err))
			errs = append(errs, fmt.Errorf("space %s: %w", name, err))
			continue
		}
		succeeded = true
		if space.ActiveConference != nil {
			return true, nil
		}
	}

	if !succeeded {
		return false, fmt.Errorf("all space lookups failed: %w", errors.Join(errs...))
	}
	return false, nil
}

// normalizeSpaceName accepts either a bare meeting code or a full
// resource name and returns the resource name the API expects.
func normalizeSpaceName(name string) string {
	if strings.HasPrefix(name, "spaces/") {
		return name
	}
	return "spaces/" + name
}
