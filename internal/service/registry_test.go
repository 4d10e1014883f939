package service

import (
	"context"
	"testing"

	"github.com/wrenbot/wren/backend/internal/shared/types"
)

type mockProvider struct {
	id string
}

func (m *mockProvider) Definition() types.Service {
	return types.Service{
		ID:           m.id,
		Name:         "Mock Service",
		Description:  "A mock service for testing",
		Category:     types.CategoryMath,
		Capabilities: []string{"evaluate", "arithmetic"},
		Tools: []types.Tool{
			{
				ID:          m.id + ".test",
				Name:        "Test Tool",
				Description: "A test tool",
				Returns:     "string",
			},
		},
	}
}

func (m *mockProvider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return &types.Result{
		Success: true,
		Data:    map[string]interface{}{"result": "success"},
	}, nil
}

func TestRegister(t *testing.T) {
	r := NewRegistry()
	p := &mockProvider{id: "test"}

	if err := r.Register(p); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, ok := r.Get("test"); !ok {
		t.Error("Service should be registered")
	}
}

func TestRegisterEmptyID(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&mockProvider{id: ""}); err == nil {
		t.Error("Register should reject an empty service ID")
	}
}

func TestList(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockProvider{id: "test1"})
	r.Register(&mockProvider{id: "test2"})

	services := r.List(nil)
	if len(services) != 2 {
		t.Errorf("Expected 2 services, got %d", len(services))
	}

	cat := types.CategoryMath
	filtered := r.List(&cat)
	if len(filtered) != 2 {
		t.Errorf("Expected 2 math services, got %d", len(filtered))
	}

	other := types.CategoryUtility
	if got := r.List(&other); len(got) != 0 {
		t.Errorf("Expected no utility services, got %d", len(got))
	}
}

func TestDiscover(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockProvider{id: "calc"})

	results := r.Discover("calc evaluate arithmetic", 5)
	if len(results) == 0 {
		t.Fatal("Should discover calc service")
	}

	if results[0].ID != "calc" {
		t.Errorf("Expected calc service, got %s", results[0].ID)
	}
}

func TestExecute(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockProvider{id: "calc"})
	ctx := context.Background()

	result, err := r.Execute(ctx, "calc.test", nil, nil)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !result.Success {
		t.Error("Execute should succeed")
	}

	if _, err := r.Execute(ctx, "badformat", nil, nil); err == nil {
		t.Error("Execute should reject unnamespaced tool IDs")
	}

	if _, err := r.Execute(ctx, "missing.test", nil, nil); err == nil {
		t.Error("Execute should fail for unknown services")
	}
}

func TestStats(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockProvider{id: "test1"})
	r.Register(&mockProvider{id: "test2"})

	stats := r.Stats()
	if stats["total_services"] != 2 {
		t.Errorf("Expected 2 services, got %v", stats["total_services"])
	}
	if stats["total_tools"] != 2 {
		t.Errorf("Expected 2 tools, got %v", stats["total_tools"])
	}
}
