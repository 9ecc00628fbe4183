package compare

import (
	"encoding/json"
)

// JSONFormatter formats calculation reports as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// Format generates JSON output for a report
func (jf *JSONFormatter) Format(report *Report) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(report, "", "  ")
	} else {
		data, err = json.Marshal(report)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}
