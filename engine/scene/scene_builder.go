package scene

// SceneBuilderOption defines a functional option for configuring a Scene during creation.
type SceneBuilderOption func(*scene)

// WithActive sets the initial active state of the scene.
//
// Parameters:
//   - active: whether the scene starts active
//
// Returns:
//   - SceneBuilderOption: the option to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithUpdateWorkers overrides the number of worker goroutines used for the
// parallel rig step each frame. Values below 1 are ignored.
//
// Parameters:
//   - workers: the number of workers in the pool
//
// Returns:
//   - SceneBuilderOption: the option to apply
func WithUpdateWorkers(workers int) SceneBuilderOption {
	return func(s *scene) {
		if workers >= 1 {
			s.updateWorkers = workers
		}
	}
}
