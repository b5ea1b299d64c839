// Package loader provides the feature loading system.
//
// Each HTTP feature (fleet, health) implements the Feature interface and is
// registered on a Manager in the start command.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// # Manager
//
// Register adds features in load order. LoadAll loads the enabled ones,
// rejects duplicate names and returns the names that were loaded so the
// start command can log them.
package loader
