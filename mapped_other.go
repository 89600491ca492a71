//go:build !unix

package probing

func MapFile[K comparable, E any, P Entry[K, E]](path string, opts ...Option[K]) (*MappedTable[K, E, P], error) {
	return nil, errNoMmap
}
