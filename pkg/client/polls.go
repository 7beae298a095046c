package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pollyapi/polly-go/pkg/pagination"
)

// ListPolls fetches one page of polls via GET /polls?skip=&limit=. Server
// ordering is preserved. A non-array response body is a validation error.
func (c *Client) ListPolls(ctx context.Context, skip, limit int) ([]Poll, error) {
	const endpoint = "/polls"

	query := url.Values{}
	query.Set("skip", strconv.Itoa(skip))
	query.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.config.BaseURL+endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, newTransportError(0, "create request", err)
	}

	resp, err := c.do(req, endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.unexpectedStatus(resp, endpoint)
	}

	var polls []Poll
	if err := c.decode(resp, endpoint, &polls); err != nil {
		return nil, err
	}
	return polls, nil
}

// TryListPolls is the sentinel variant of ListPolls: any failure is logged
// as a diagnostic and reported as a nil result.
func (c *Client) TryListPolls(ctx context.Context, skip, limit int) []Poll {
	polls, err := c.ListPolls(ctx, skip, limit)
	if err != nil {
		c.logger.Error().Err(err).Int("skip", skip).Int("limit", limit).Msg("Failed to fetch polls")
		return nil
	}
	return polls
}

// ListAllPolls drains the /polls collection through the pagination
// accumulator, pageSize items per request, preserving server order. On a
// mid-sequence fetch failure the polls accumulated so far are returned
// together with the error.
func (c *Client) ListAllPolls(ctx context.Context, pageSize int) ([]Poll, error) {
	acc := pagination.NewAccumulator(func(ctx context.Context, skip, limit int) ([]Poll, error) {
		return c.ListPolls(ctx, skip, limit)
	}, pagination.Config{PageSize: pageSize})

	return acc.FetchAll(ctx)
}

// CastVote submits a vote via POST /polls/{poll_id}/vote under the given
// bearer token.
//
// A 401 response is reported as a domain error ("Unauthorized: Invalid or
// missing JWT token" unless the server supplies a detail), a 404 as "Poll or
// option not found".
func (c *Client) CastVote(ctx context.Context, token string, pollID, optionID int) (*Vote, error) {
	const endpoint = "/polls/{poll_id}/vote"

	payload, err := json.Marshal(struct {
		OptionID int `json:"option_id"`
	}{OptionID: optionID})
	if err != nil {
		return nil, newValidationError("encode vote request", err)
	}

	target := fmt.Sprintf("%s/polls/%d/vote", c.config.BaseURL, pollID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return nil, newTransportError(0, "create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.do(req, endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var vote Vote
		if err := c.decode(resp, endpoint, &vote); err != nil {
			return nil, err
		}
		return &vote, nil

	case http.StatusUnauthorized:
		return nil, c.domainError(resp, endpoint,
			"", "Unauthorized: Invalid or missing JWT token")

	case http.StatusNotFound:
		return nil, c.domainError(resp, endpoint, "", "Poll or option not found")

	default:
		return nil, c.unexpectedStatus(resp, endpoint)
	}
}

// TryCastVote is the sentinel variant of CastVote: any failure is logged as
// a diagnostic and reported as a nil result.
func (c *Client) TryCastVote(ctx context.Context, token string, pollID, optionID int) *Vote {
	vote, err := c.CastVote(ctx, token, pollID, optionID)
	if err != nil {
		c.logger.Error().Err(err).Int("poll_id", pollID).Int("option_id", optionID).Msg("Vote failed")
		return nil
	}
	return vote
}

// PollResults fetches the aggregate vote counts per option for a poll via
// GET /polls/{poll_id}/results. A 404 response is reported as a domain error
// ("Poll not found" unless the server supplies a detail).
func (c *Client) PollResults(ctx context.Context, pollID int) (*PollResults, error) {
	const endpoint = "/polls/{poll_id}/results"

	target := fmt.Sprintf("%s/polls/%d/results", c.config.BaseURL, pollID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, newTransportError(0, "create request", err)
	}

	resp, err := c.do(req, endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var results PollResults
		if err := c.decode(resp, endpoint, &results); err != nil {
			return nil, err
		}
		return &results, nil

	case http.StatusNotFound:
		return nil, c.domainError(resp, endpoint, "", "Poll not found")

	default:
		return nil, c.unexpectedStatus(resp, endpoint)
	}
}

// TryPollResults is the sentinel variant of PollResults: any failure is
// logged as a diagnostic and reported as a nil result.
func (c *Client) TryPollResults(ctx context.Context, pollID int) *PollResults {
	results, err := c.PollResults(ctx, pollID)
	if err != nil {
		c.logger.Error().Err(err).Int("poll_id", pollID).Msg("Failed to get poll results")
		return nil
	}
	return results
}
