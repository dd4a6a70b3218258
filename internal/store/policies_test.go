package store

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/closedcode/gateway-admin/internal/models"
)

func strsp(values ...string) *[]string { return &values }

func boolp(v bool) *bool { return &v }

func TestPoliciesUpdateReplacesSuppliedFields(t *testing.T) {
	db := setupStoreDB(t)
	ctx := context.Background()
	policies := NewPolicies(db, nil)

	user := mustProvision(t, db, "p@example.com", "sub-p", true)

	updated, err := policies.Update(ctx, user.ID, PolicyPatch{
		MCPWhitelist: strsp("mcp://alpha", "mcp://beta"),
		AllowedTools: strsp("code", "search"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := models.ParseStringList(updated.MCPWhitelist); !reflect.DeepEqual(got, []string{"mcp://alpha", "mcp://beta"}) {
		t.Fatalf("unexpected whitelist: %v", got)
	}
	if updated.WebSearchEnabled {
		t.Fatalf("web_search_enabled changed without being supplied")
	}

	// Supplying a list replaces the prior value, it does not append.
	updated, err = policies.Update(ctx, user.ID, PolicyPatch{
		MCPWhitelist:     strsp("mcp://gamma"),
		WebSearchEnabled: boolp(true),
	})
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if got := models.ParseStringList(updated.MCPWhitelist); !reflect.DeepEqual(got, []string{"mcp://gamma"}) {
		t.Fatalf("expected whitelist replaced, got %v", got)
	}
	if !updated.WebSearchEnabled {
		t.Fatalf("expected web_search_enabled=true")
	}
	if got := models.ParseStringList(updated.AllowedTools); !reflect.DeepEqual(got, []string{"code", "search"}) {
		t.Fatalf("allowed_tools changed without being supplied: %v", got)
	}
}

func TestPoliciesAcceptUnknownTools(t *testing.T) {
	db := setupStoreDB(t)
	ctx := context.Background()
	policies := NewPolicies(db, nil)

	user := mustProvision(t, db, "tools@example.com", "sub-tools", true)

	// The tool vocabulary is open at the data layer.
	updated, err := policies.Update(ctx, user.ID, PolicyPatch{AllowedTools: strsp("code", "quantum")})
	if err != nil {
		t.Fatalf("update with unknown tool: %v", err)
	}
	if got := models.ParseStringList(updated.AllowedTools); !reflect.DeepEqual(got, []string{"code", "quantum"}) {
		t.Fatalf("unexpected tools: %v", got)
	}
}

func TestPoliciesClearListWithEmptySlice(t *testing.T) {
	db := setupStoreDB(t)
	ctx := context.Background()
	policies := NewPolicies(db, nil)

	user := mustProvision(t, db, "clear@example.com", "sub-clear", true)
	if _, err := policies.Update(ctx, user.ID, PolicyPatch{AllowedTools: strsp("code")}); err != nil {
		t.Fatalf("seed tools: %v", err)
	}

	empty := []string{}
	updated, err := policies.Update(ctx, user.ID, PolicyPatch{AllowedTools: &empty})
	if err != nil {
		t.Fatalf("clear tools: %v", err)
	}
	if got := models.ParseStringList(updated.AllowedTools); len(got) != 0 {
		t.Fatalf("expected tools cleared, got %v", got)
	}
}

func TestPoliciesNotFound(t *testing.T) {
	db := setupStoreDB(t)
	ctx := context.Background()
	policies := NewPolicies(db, nil)

	if _, err := policies.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on get, got %v", err)
	}
	if _, err := policies.Update(ctx, "missing", PolicyPatch{WebSearchEnabled: boolp(true)}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
}
