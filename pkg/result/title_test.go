package result_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nithinsankar-b/TestMetricsDashboard/pkg/result"
)

func TestParseTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		want    *result.TitleParts
		wantErr bool
	}{
		{
			name:  "six segments decompose into named fields",
			title: "diskbench-ubuntu-22.04-uefi-default-2024.json",
			want: &result.TitleParts{
				Family:   "diskbench",
				Board:    "ubuntu-22.04",
				BootType: "uefi",
				Release:  "default",
				Config:   "2024.json",
			},
		},
		{
			name:  "board spans second and third segments",
			title: "netbench-rpi-5b-sdboot-jammy-2024.json",
			want: &result.TitleParts{
				Family:   "netbench",
				Board:    "rpi-5b",
				BootType: "sdboot",
				Release:  "jammy",
				Config:   "2024.json",
			},
		},
		{
			name:    "five segments rejected",
			title:   "diskbench-ubuntu-uefi-default-2024.json",
			wantErr: true,
		},
		{
			name:    "seven segments rejected",
			title:   "diskbench-ubuntu-22.04-uefi-default-extra-2024.json",
			wantErr: true,
		},
		{
			name:    "empty segment rejected",
			title:   "diskbench--22.04-uefi-default-2024.json",
			wantErr: true,
		},
		{
			name:    "empty title rejected",
			title:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts, err := result.ParseTitle(tt.title)

			if tt.wantErr {
				require.Error(t, err)

				var titleErr *result.MalformedTitleError
				require.ErrorAs(t, err, &titleErr)
				assert.Equal(t, tt.title, titleErr.Title)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, parts)
		})
	}
}

func TestSystemKey(t *testing.T) {
	title := "diskbench-ubuntu-22.04-uefi-default-2024.json"

	key, err := result.SystemKey(title)
	require.NoError(t, err)

	// The key is the title minus the fixed 13-character suffix.
	assert.Equal(t, title[:len(title)-13], key)
}

func TestSystemKey_TooShort(t *testing.T) {
	_, err := result.SystemKey("short.json")

	var titleErr *result.MalformedTitleError
	require.ErrorAs(t, err, &titleErr)
}
