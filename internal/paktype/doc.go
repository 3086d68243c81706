// Package paktype defines the types shared by the container registry, the
// indexers and the extraction engine. It avoids circular imports between the
// actpak package and its internal packages.
package paktype
