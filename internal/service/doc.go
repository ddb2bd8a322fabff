// Package service contains the application-specific use cases. It turns an
// inbound story request into a call on a generation.Generator and maps the
// outcome onto the story.Response union, keeping HTTP and upstream client
// details out of the domain.
package service
