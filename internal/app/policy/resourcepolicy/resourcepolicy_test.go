package resourcepolicy_test

import (
	"testing"

	"github.com/ycyw/humanitieshub/internal/app/policy/resourcepolicy"
)

func TestCanPerform_UploadAndComment(t *testing.T) {
	for _, role := range []string{"admin", "staff"} {
		if !resourcepolicy.CanPerform(resourcepolicy.ActionUpload, role, "Ms. Thompson", "") {
			t.Errorf("expected %s to be able to upload", role)
		}
		if !resourcepolicy.CanPerform(resourcepolicy.ActionComment, role, "Ms. Thompson", "") {
			t.Errorf("expected %s to be able to comment", role)
		}
	}

	if resourcepolicy.CanPerform(resourcepolicy.ActionUpload, "visitor", "", "") {
		t.Error("visitors must not upload")
	}
}

func TestCanApprove(t *testing.T) {
	if !resourcepolicy.CanApprove("admin") {
		t.Error("admin should approve")
	}
	if !resourcepolicy.CanApprove("ADMIN") {
		t.Error("role check should be case-insensitive")
	}
	if resourcepolicy.CanApprove("staff") {
		t.Error("staff must not approve")
	}
	if resourcepolicy.CanApprove("") {
		t.Error("unauthenticated must not approve")
	}
}

func TestCanDelete(t *testing.T) {
	// Admin deletes anything
	if !resourcepolicy.CanDelete("admin", "Kelsey Lowe", "Ms. Thompson") {
		t.Error("admin should delete any resource")
	}

	// Author deletes their own work, case-insensitively
	if !resourcepolicy.CanDelete("staff", "Ms. Thompson", "Ms. Thompson") {
		t.Error("author should delete their own resource")
	}
	if !resourcepolicy.CanDelete("staff", "ms. thompson", "Ms. Thompson") {
		t.Error("author match should be case-insensitive")
	}

	// Staff cannot delete someone else's work
	if resourcepolicy.CanDelete("staff", "Mr. Davies", "Ms. Thompson") {
		t.Error("staff must not delete another author's resource")
	}

	// Empty names never match
	if resourcepolicy.CanDelete("staff", "", "") {
		t.Error("empty names must not grant deletion")
	}

	if resourcepolicy.CanDelete("visitor", "Ms. Thompson", "Ms. Thompson") {
		t.Error("visitors must not delete")
	}
}

func TestCanPerform_UnknownAction(t *testing.T) {
	if resourcepolicy.CanPerform(resourcepolicy.Action("archive"), "admin", "", "") {
		t.Error("unknown actions must be denied")
	}
}
