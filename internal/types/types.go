package types

// Match is a candidate serial whose digest ends with the target SSID bytes.
// Key is the leading digest bytes in uppercase hex, the default WPA key.
type Match struct {
	Serial string `json:"serial"`
	Year   int    `json:"year"`
	Week   int    `json:"week"`
	Key    string `json:"key"`
	Digest string `json:"digest"`
}
