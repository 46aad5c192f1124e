package identity

import (
	"testing"

	"github.com/bookgrove/bookgrove/model"
)

func TestSessionFiresOnlyOnChange(t *testing.T) {
	session := NewSession()

	var fired int
	session.OnChange(func(*model.User) { fired++ })

	alice := &model.User{ID: 1, Username: "alice"}
	session.Set(alice)
	if fired != 1 {
		t.Fatalf("Expected callback on sign-in, got %d", fired)
	}

	// Same identity again is not a change.
	session.Set(&model.User{ID: 1, Username: "alice"})
	if fired != 1 {
		t.Fatalf("Expected no callback for the same user, got %d", fired)
	}

	session.Set(&model.User{ID: 2, Username: "bob"})
	if fired != 2 {
		t.Fatalf("Expected callback on user switch, got %d", fired)
	}

	session.Set(nil)
	if fired != 3 {
		t.Fatalf("Expected callback on sign-out, got %d", fired)
	}
	if session.Current() != nil {
		t.Fatalf("Expected anonymous session after sign-out")
	}
}
