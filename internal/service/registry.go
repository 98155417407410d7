package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/GriffinCanCode/calc/internal/shared/types"
)

// Provider is implemented by every service the registry can route to
type Provider interface {
	Definition() types.Service
	Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error)
}

// Registry manages service discovery and execution
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry creates a new service registry
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds a service provider
func (r *Registry) Register(provider Provider) error {
	def := provider.Definition()
	if def.ID == "" {
		return fmt.Errorf("service ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.providers[def.ID]; exists {
		return fmt.Errorf("service already registered: %s", def.ID)
	}
	r.providers[def.ID] = provider
	return nil
}

// Get retrieves a service by ID
func (r *Registry) Get(serviceID string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[serviceID]
	return p, ok
}

// List returns registered services sorted by ID, optionally filtered by category
func (r *Registry) List(category *types.Category) []types.Service {
	r.mu.RLock()
	defer r.mu.RUnlock()

	services := make([]types.Service, 0, len(r.providers))
	for _, p := range r.providers {
		def := p.Definition()
		if category == nil || def.Category == *category {
			services = append(services, def)
		}
	}
	sort.Slice(services, func(i, j int) bool { return services[i].ID < services[j].ID })
	return services
}

// Discover finds relevant services for a given intent
func (r *Registry) Discover(intent string, limit int) []types.Service {
	type scored struct {
		service types.Service
		score   float64
	}

	intentLower := strings.ToLower(intent)
	var results []scored
	for _, def := range r.List(nil) {
		if s := relevance(intentLower, def); s > 0 {
			results = append(results, scored{service: def, score: s})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	output := make([]types.Service, 0, limit)
	for i := 0; i < len(results) && i < limit; i++ {
		output = append(output, results[i].service)
	}
	return output
}

// Execute routes "service.tool" to the owning provider
func (r *Registry) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	serviceID, _, ok := strings.Cut(toolID, ".")
	if !ok || serviceID == "" {
		return failure("invalid tool ID format"), fmt.Errorf("invalid tool ID format: %s", toolID)
	}

	provider, found := r.Get(serviceID)
	if !found {
		msg := fmt.Sprintf("service not found: %s", serviceID)
		return failure(msg), fmt.Errorf("%s", msg)
	}

	return provider.Execute(ctx, toolID, params, appCtx)
}

// Stats returns registry statistics
func (r *Registry) Stats() map[string]interface{} {
	var total, totalTools int
	categories := make(map[string]int)

	for _, def := range r.List(nil) {
		total++
		totalTools += len(def.Tools)
		categories[string(def.Category)]++
	}

	return map[string]interface{}{
		"total_services": total,
		"total_tools":    totalTools,
		"categories":     categories,
	}
}

func relevance(intent string, service types.Service) float64 {
	score := 0.0

	if strings.Contains(intent, service.ID) || strings.Contains(intent, strings.ToLower(service.Name)) {
		score += 10.0
	}

	for _, word := range strings.Fields(strings.ToLower(service.Description)) {
		if len(word) > 3 && strings.Contains(intent, word) {
			score += 5.0
		}
	}

	for _, capability := range service.Capabilities {
		if strings.Contains(intent, strings.ReplaceAll(strings.ToLower(capability), "_", " ")) {
			score += 3.0
		}
	}

	if strings.Contains(intent, string(service.Category)) {
		score += 2.0
	}

	return score
}

func failure(msg string) *types.Result {
	return &types.Result{Success: false, Error: &msg}
}
