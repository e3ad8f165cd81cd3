package models

import "testing"

func TestIsValidUsername(t *testing.T) {
	if !IsValidUsername(UserHe) || !IsValidUsername(UserShe) {
		t.Fatal("both fixed accounts must be valid")
	}
	for _, name := range []string{"", "bob", "HE", "they"} {
		if IsValidUsername(name) {
			t.Fatalf("%q must not be a valid username", name)
		}
	}
}

func TestPeerOf(t *testing.T) {
	if PeerOf(UserHe) != UserShe {
		t.Fatalf("peer of %q must be %q", UserHe, UserShe)
	}
	if PeerOf(UserShe) != UserHe {
		t.Fatalf("peer of %q must be %q", UserShe, UserHe)
	}
}
