// Package leetify is a client for the Leetify public Counter-Strike
// statistics API: player profiles, match history and match details.
//
//	client, err := leetify.NewBuilder().
//	    APIKey(os.Getenv("LEETIFY_API_KEY")).
//	    Timeout(10 * time.Second).
//	    Build()
//	if err != nil {
//	    return err
//	}
//	id, err := leetify.ParsePlayerID("76561198283431555")
//	if err != nil {
//	    return err
//	}
//	profile, err := client.GetProfile(ctx, id)
//
// Every operation makes exactly one request, never retries and never caches.
// Errors are *Error values; test the kind with errors.Is against the ErrXxx
// sentinels.
package leetify
