// Package service keeps the catalog of tool providers exposed by the calc
// server and routes tool calls to them.
//
// Tools are addressed as "service.tool"; Execute splits on the first dot
// and hands the call to the provider registered under that service ID.
// Discover ranks services against a free-text query by matching the
// service ID and name, description words, capabilities and category.
//
//	registry := service.NewRegistry()
//	_ = registry.Register(calc.NewProvider(calc.Options{}))
//	matches := registry.Discover("evaluate arithmetic", 5)
//	result, err := registry.Execute(ctx, "calc.evaluate", params, nil)
package service
