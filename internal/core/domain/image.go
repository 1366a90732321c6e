package domain

// ImageBlob is a fetched image body as served by the upstream host.
type ImageBlob struct {
	Data        []byte
	ContentType string
}
