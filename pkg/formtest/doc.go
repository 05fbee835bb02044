// Package formtest provides helpers for testing code built on form engines.
//
// # Quick Start
//
// Create a tester, drive the engine and make assertions:
//
//	func TestSignup(t *testing.T) {
//	    tester := formtest.NewTesterWithT(t, form.Options{
//	        Schema:     signupSchema,
//	        ValidateOn: form.Events{form.EventChange},
//	    })
//	    tester.Engine.HandleChange("email", "nope")
//
//	    tester.ExpectError("email", "email")
//	    tester.ExpectEvents(form.EventInit, form.EventChange)
//	}
//
// # Snapshot Testing
//
// Capture and compare the final state and every notification:
//
//	tester.CaptureSnapshot().MatchesFile(t, "testdata/signup.snapshot.yaml")
//
// Update snapshots with:
//
//	FORMIDABLE_UPDATE_SNAPSHOTS=1 go test ./...
package formtest
