package ns

const (
	// "Thumbnails" are the md5sum of the data, which is used to identify it. In that way the DB size is reduced

	NamespaceDigest = byte(1)   // []byte -> string		Thumbnail of input trits + rounds + mode + length -> digest trytes
	NamespaceStats  = byte(100) // []byte -> int64		Stat name -> counter
)
