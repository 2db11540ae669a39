package controller

import "fmt"

// Kind enumerates the ways a controller operation can fail. The HTTP
// surface maps each Kind to a status code per spec.md §6.
type Kind int

const (
	BufferSizeHasNotBeenSet Kind = iota
	TrackAlreadyExists
	TrackDoesNotExist
	TrackReferencesNonExistantPluginInstance
	MovingPluginInstancesBetweenTracksNotImplemented
	TrackUpdateNotImplemented
	PluginInstanceAlreadyExists
	PluginInstanceDoesNotExist
	PluginInstanceUpdateNotImplemented
	FailedToBuildPlugin
)

// Error is the controller's tagged error variant. Its debug rendering
// (Error()) is what the HTTP layer writes as the response body.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func errBufferSizeHasNotBeenSet() error {
	return &Error{Kind: BufferSizeHasNotBeenSet, Msg: "BufferSizeHasNotBeenSet"}
}

func errTrackAlreadyExists(id IntId) error {
	return &Error{Kind: TrackAlreadyExists, Msg: fmt.Sprintf("TrackAlreadyExists(%d)", id)}
}

func errTrackDoesNotExist(id IntId) error {
	return &Error{Kind: TrackDoesNotExist, Msg: fmt.Sprintf("TrackDoesNotExist(%d)", id)}
}

func errTrackReferencesNonExistantPluginInstance(id IntId) error {
	return &Error{
		Kind: TrackReferencesNonExistantPluginInstance,
		Msg:  fmt.Sprintf("TrackReferencesNonExistantPluginInstance(%d)", id),
	}
}

func errMovingPluginInstancesBetweenTracksNotImplemented(id IntId) error {
	return &Error{
		Kind: MovingPluginInstancesBetweenTracksNotImplemented,
		Msg:  fmt.Sprintf("MovingPluginInstancesBetweenTracksNotImplemented(%d)", id),
	}
}

func errTrackUpdateNotImplemented(id IntId) error {
	return &Error{Kind: TrackUpdateNotImplemented, Msg: fmt.Sprintf("UpdatingTrackNotImplemented(%d)", id)}
}

func errPluginInstanceAlreadyExists(id IntId) error {
	return &Error{
		Kind: PluginInstanceAlreadyExists,
		Msg:  fmt.Sprintf("PluginInstanceAlreadyExists(%d)", id),
	}
}

func errPluginInstanceDoesNotExist(id IntId) error {
	return &Error{
		Kind: PluginInstanceDoesNotExist,
		Msg:  fmt.Sprintf("PluginInstanceNotFound(%d)", id),
	}
}

func errPluginInstanceUpdateNotImplemented(id IntId) error {
	return &Error{
		Kind: PluginInstanceUpdateNotImplemented,
		Msg:  fmt.Sprintf("PluginInstanceUpdateNotImplemented(%d)", id),
	}
}

func errFailedToBuildPlugin(id IntId, cause error) error {
	return &Error{
		Kind: FailedToBuildPlugin,
		Msg:  fmt.Sprintf("FailedToBuildPlugin(%d)", id),
		Err:  cause,
	}
}
