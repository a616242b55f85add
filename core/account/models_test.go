package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Status_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{name: "pending -> active", from: StatusPending, to: StatusActive, want: true},
		{name: "active -> blocked", from: StatusActive, to: StatusBlocked, want: true},
		{name: "blocked -> active", from: StatusBlocked, to: StatusActive, want: true},
		{name: "active -> pending", from: StatusActive, to: StatusPending, want: false},
		{name: "pending -> blocked", from: StatusPending, to: StatusBlocked, want: false},
		{name: "blocked -> pending", from: StatusBlocked, to: StatusPending, want: false},
		{name: "anything -> inactive", from: StatusActive, to: StatusInactive, want: false},
		{name: "inactive -> active", from: StatusInactive, to: StatusActive, want: false},
		{name: "no self transition", from: StatusActive, to: StatusActive, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func Test_Status_IsValid(t *testing.T) {
	for _, s := range AllStatuses {
		assert.True(t, s.IsValid(), "status %q", s)
	}
	assert.False(t, Status("deleted").IsValid())
	assert.False(t, Status("").IsValid())
}

func Test_Role_IsValid(t *testing.T) {
	for _, r := range AllRoles {
		assert.True(t, r.IsValid(), "role %q", r)
	}
	assert.False(t, Role("teacher").IsValid())
}
