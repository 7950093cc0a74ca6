// Package redis connects to Redis and provides validation rules backed by Redis sets.
//
// The package wraps the go-redis client and adds:
//
//   - Connect, which retries the connection using the supplied Config.
//   - Ping, a health check suitable for start-up probes.
//   - Membership, deferred validator predicates that check values against
//     Redis sets without blocking the rule chain.
//
// Configuration is described by the Config struct whose fields can be
// populated from environment variables via github.com/caarlos0/env.
//
// # Usage
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//
//	rules := redis.NewMembership(client, cfg.KeyPrefix)
//	if err := rules.Register(registry); err != nil {
//	    return err
//	}
//
//	v := validator.New(map[string]string{
//	    "country":  "required|exists:countries",
//	    "username": "required|unique:usernames",
//	}, validator.WithRegistry(registry))
//
// Results of chains ending in a membership rule are deferred and must be
// awaited with Result.Await.
//
// # Error Handling
//
// Connection problems are reported with ErrEmptyConnectionURL,
// ErrFailedToParseRedisConnString and ErrRedisNotReady. A membership rule
// without a set name, or a failed lookup, rejects the deferred result with
// ErrMissingSetName or ErrMembershipLookup; these surface from Result.Await
// and no message is recorded for the field.
package redis
