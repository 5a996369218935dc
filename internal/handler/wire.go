package handler

import "github.com/google/wire"

// ProviderSet is the Wire provider set for the HTTP handler layer.
var ProviderSet = wire.NewSet(
	NewIdentityService,
)
