package cli

import (
	"bytes"
	"io"
	"testing"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    OutputFormat
		wantErr bool
	}{
		{name: "text format", input: "text", want: OutputFormatText},
		{name: "json format", input: "json", want: OutputFormatJSON},
		{name: "empty string defaults to text", input: "", want: OutputFormatText},
		{name: "invalid format", input: "xml", wantErr: true},
		{name: "yaml is not an output format", input: "yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseOutputFormat() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseOutputFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOutputWriter_IsJSON(t *testing.T) {
	if !NewOutputWriter(OutputFormatJSON, io.Discard).IsJSON() {
		t.Error("json writer should report IsJSON")
	}
	if NewOutputWriter(OutputFormatText, io.Discard).IsJSON() {
		t.Error("text writer should not report IsJSON")
	}
}

func TestOutputWriter_WriteJSON(t *testing.T) {
	var buf bytes.Buffer
	o := NewOutputWriter(OutputFormatJSON, &buf)

	if err := o.WriteJSON(sendOutput{Sent: true, Backend: "dbus"}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	expected := "{\n  \"sent\": true,\n  \"backend\": \"dbus\"\n}\n"
	if got := buf.String(); got != expected {
		t.Errorf("WriteJSON() output = %q, want %q", got, expected)
	}
}

func TestOutputWriter_Write(t *testing.T) {
	t.Run("json format skips textFunc", func(t *testing.T) {
		var buf bytes.Buffer
		o := NewOutputWriter(OutputFormatJSON, &buf)

		textCalled := false
		err := o.Write(sendOutput{Sent: true}, func(io.Writer) {
			textCalled = true
		})

		if err != nil {
			t.Errorf("Write() error = %v", err)
		}
		if textCalled {
			t.Error("Write() called textFunc when format is JSON")
		}
		if buf.Len() == 0 {
			t.Error("Write() did not write JSON output")
		}
	})

	t.Run("text format writes through textFunc", func(t *testing.T) {
		var buf bytes.Buffer
		o := NewOutputWriter(OutputFormatText, &buf)

		err := o.Write(sendOutput{Sent: true}, func(w io.Writer) {
			_, _ = io.WriteString(w, "sent\n")
		})

		if err != nil {
			t.Errorf("Write() error = %v", err)
		}
		if buf.String() != "sent\n" {
			t.Errorf("Write() output = %q", buf.String())
		}
	})
}
