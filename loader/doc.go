// Package loader acquires the two revisions of a document that a breaking
// change check compares.
//
// [FileSource] reads the current revision from local storage. [GitHubSource]
// fetches the previous revision through the GitHub contents API, defaulting
// to the repository's default branch. Every failure is reported as an
// [oaserrors.LoadError] whose Kind tells not-found, auth, network, read and
// parse failures apart:
//
//	src, err := loader.NewGitHubSource("acme/api", "./openapi.yaml",
//		loader.WithToken(os.Getenv("GITHUB_TOKEN")),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	doc, err := src.Load(ctx)
//	if errors.Is(err, oaserrors.ErrNotFound) {
//		// first revision of the file, nothing to compare against
//	}
package loader
