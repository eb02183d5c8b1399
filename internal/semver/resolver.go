// Package semver resolves the best registry tag for an image under a semver
// policy, used by the outdated command.
package semver

import (
	"context"
	"fmt"
	"sort"

	mvc "github.com/Masterminds/semver/v3"
	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/v1/remote"
)

type Resolver struct {
	keychain authn.Keychain
	auth     authn.Authenticator
}

// NewResolver returns a resolver using the standard docker config
// (~/.docker/config.json) for registry auth.
func NewResolver() *Resolver {
	return &Resolver{keychain: authn.DefaultKeychain}
}

// NewResolverWithAuth returns a resolver using static registry credentials
// instead of the keychain.
func NewResolverWithAuth(user, pass string) *Resolver {
	return &Resolver{auth: &authn.Basic{Username: user, Password: pass}}
}

// Resolve returns the best matching image tag for the policy.
// image: "postgres:14.1", policy: "14.x" or "^14.0" -> "postgres:14.5"
// when 14.5 is the highest matching tag in the registry.
func (r *Resolver) Resolve(ctx context.Context, image string, policy string) (string, error) {
	constraint, err := parseConstraint(policy)
	if err != nil {
		return "", err
	}

	repo, err := parseRepo(image)
	if err != nil {
		return "", err
	}

	opts := []remote.Option{remote.WithContext(ctx)}
	if r.auth != nil {
		opts = append(opts, remote.WithAuth(r.auth))
	} else {
		opts = append(opts, remote.WithAuthFromKeychain(r.keychain))
	}
	tags, err := remote.List(repo, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to list tags for %s: %w", repo.Name(), err)
	}

	tag, err := selectHighestTag(tags, constraint)
	if err != nil {
		return "", fmt.Errorf("%w for %s", err, repo.Name())
	}
	return fmt.Sprintf("%s:%s", repo.Name(), tag), nil
}

func parseConstraint(policy string) (*mvc.Constraints, error) {
	c, err := mvc.NewConstraint(policy)
	if err != nil {
		return nil, fmt.Errorf("invalid semver policy %q: %w", policy, err)
	}
	return c, nil
}

func parseRepo(image string) (name.Repository, error) {
	ref, err := name.ParseReference(image)
	if err != nil {
		return name.Repository{}, fmt.Errorf("invalid image reference %q: %w", image, err)
	}
	return ref.Context(), nil
}

// selectHighestTag picks the highest tag satisfying the constraint,
// preserving the registry's exact tag formatting (e.g. v1.0 vs 1.0).
// Non-semver tags like "latest" or "alpine" are skipped.
func selectHighestTag(tags []string, constraint *mvc.Constraints) (string, error) {
	var versions []*mvc.Version
	originalTags := make(map[string]string)

	for _, t := range tags {
		v, err := mvc.NewVersion(t)
		if err != nil {
			continue
		}
		if constraint.Check(v) {
			versions = append(versions, v)
			originalTags[v.Original()] = t
		}
	}

	if len(versions) == 0 {
		return "", fmt.Errorf("no tags found matching policy")
	}

	sort.Sort(mvc.Collection(versions))
	highest := versions[len(versions)-1]

	tag := originalTags[highest.Original()]
	if tag == "" {
		tag = highest.Original()
	}
	return tag, nil
}
