package graph

import (
	"context"
	"net/url"

	"tenant-api/internal/domain"
)

// userPager pulls the upstream user collection one page at a time,
// following @odata.nextLink until the provider stops sending one.
type userPager struct {
	c       *Client
	next    string
	started bool
}

func (p *userPager) NextPage(ctx context.Context) ([]domain.User, bool, error) {
	target := p.next
	if !p.started {
		p.started = true
		target = p.c.baseURL + "/users?" + url.Values{"$select": {userSelect}}.Encode()
	} else if target == "" {
		return nil, false, nil
	}

	var page userCollection
	if err := p.c.do(ctx, "GET", target, nil, &page, p.c.userRetries); err != nil {
		return nil, false, err
	}
	p.next = page.NextLink

	users := make([]domain.User, 0, len(page.Value))
	for _, u := range page.Value {
		users = append(users, userToDomain(u))
	}
	return users, p.next != "", nil
}

type groupPager struct {
	c       *Client
	next    string
	started bool
}

func (p *groupPager) NextPage(ctx context.Context) ([]domain.Group, bool, error) {
	target := p.next
	if !p.started {
		p.started = true
		target = p.c.baseURL + "/groups?" + url.Values{"$select": {groupSelect}}.Encode()
	} else if target == "" {
		return nil, false, nil
	}

	var page groupCollection
	if err := p.c.do(ctx, "GET", target, nil, &page, p.c.groupRetries); err != nil {
		return nil, false, err
	}
	p.next = page.NextLink

	groups := make([]domain.Group, 0, len(page.Value))
	for _, g := range page.Value {
		groups = append(groups, groupToDomain(g))
	}
	return groups, p.next != "", nil
}
