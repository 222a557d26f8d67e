package handler

import (
	"fmt"
	htmlstd "html"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const (
	mediaAspectVideo = "16:9"
	mediaAspectAudio = "compact"
)

var (
	mediaEmbedLinePattern = regexp.MustCompile(`^\s*<?((?:https?://)?[^\s]+)>?\s*$`)
	mediaEmbedSrcPattern  = regexp.MustCompile(
		`^https://(?:www\.)?(?:youtube\.com/embed/|youtube-nocookie\.com/embed/|player\.vimeo\.com/video/|w\.soundcloud\.com/player/|open\.spotify\.com/embed/)`,
	)
	mediaEmbedTimePattern = regexp.MustCompile(`(?i)(\d+)(h|m|s)`) // for YouTube t=1h2m3s
	listIndexPattern      = regexp.MustCompile(`^\d+\.\s+`)
)

func buildContentSanitizer() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("iframe")
	policy.AllowAttrs("class", "data-media-embed", "data-media-platform", "data-media-aspect", "data-media-source").OnElements("div")
	policy.AllowAttrs("src").Matching(mediaEmbedSrcPattern).OnElements("iframe")
	policy.AllowAttrs("title", "allow", "allowfullscreen", "frameborder", "loading", "referrerpolicy").OnElements("iframe")
	return policy
}

type mediaEmbed struct {
	Platform string
	Source   string
	EmbedURL string
	Aspect   string
}

// applyMediaEmbeds 将独立成行的视频/音频链接替换为嵌入播放器，
// 代码块、引用、列表里的链接保持原样。
func applyMediaEmbeds(markdown string) string {
	if strings.TrimSpace(markdown) == "" {
		return markdown
	}

	lines := strings.Split(markdown, "\n")
	inFence := false
	fenceMarker := ""

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if marker := detectFenceMarker(trimmed); marker != "" {
			if inFence {
				if strings.HasPrefix(trimmed, fenceMarker) {
					inFence = false
					fenceMarker = ""
				}
			} else {
				inFence = true
				fenceMarker = marker
			}
			continue
		}

		if inFence {
			continue
		}

		if isIndentedCodeLine(line) || shouldSkipEmbedLine(trimmed) {
			continue
		}

		urlValue, ok := extractMediaURL(trimmed)
		if !ok {
			continue
		}

		embed, ok := parseMediaEmbed(urlValue)
		if !ok {
			continue
		}

		lines[i] = buildMediaEmbedHTML(embed)
	}

	return strings.Join(lines, "\n")
}

func detectFenceMarker(line string) string {
	if strings.HasPrefix(line, "```") {
		return "```"
	}
	if strings.HasPrefix(line, "~~~") {
		return "~~~"
	}
	return ""
}

func isIndentedCodeLine(line string) bool {
	return strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t")
}

func shouldSkipEmbedLine(line string) bool {
	if line == "" {
		return true
	}
	if strings.HasPrefix(line, ">") {
		return true
	}
	if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") || strings.HasPrefix(line, "+ ") {
		return true
	}
	if listIndexPattern.MatchString(line) {
		return true
	}
	return false
}

func extractMediaURL(line string) (string, bool) {
	match := mediaEmbedLinePattern.FindStringSubmatch(line)
	if match == nil {
		return "", false
	}
	value := strings.TrimSpace(match[1])
	if value == "" {
		return "", false
	}
	return value, true
}

func parseMediaEmbed(raw string) (mediaEmbed, bool) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "<")
	trimmed = strings.TrimSuffix(trimmed, ">")
	trimmed = normalizeMediaURL(trimmed)
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed == nil {
		return mediaEmbed{}, false
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return mediaEmbed{}, false
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return mediaEmbed{}, false
	}

	if embed, ok := parseYouTubeEmbed(parsed, trimmed); ok {
		return embed, true
	}
	if embed, ok := parseVimeoEmbed(parsed, trimmed); ok {
		return embed, true
	}
	if embed, ok := parseSoundCloudEmbed(parsed, trimmed); ok {
		return embed, true
	}
	if embed, ok := parseSpotifyEmbed(parsed, trimmed); ok {
		return embed, true
	}
	return mediaEmbed{}, false
}

func normalizeMediaURL(raw string) string {
	if raw == "" {
		return raw
	}
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return raw
	}
	knownPrefixes := []string{
		"youtube.com/",
		"www.youtube.com/",
		"youtu.be/",
		"vimeo.com/",
		"www.vimeo.com/",
		"player.vimeo.com/",
		"soundcloud.com/",
		"www.soundcloud.com/",
		"open.spotify.com/",
	}
	for _, prefix := range knownPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return "https://" + raw
		}
	}
	return raw
}

func parseYouTubeEmbed(u *url.URL, source string) (mediaEmbed, bool) {
	host := strings.ToLower(u.Hostname())
	var videoID string

	switch {
	case host == "youtu.be":
		videoID = strings.Trim(strings.TrimPrefix(u.Path, "/"), "/")
		if strings.Contains(videoID, "/") {
			videoID = strings.Split(videoID, "/")[0]
		}
	case isHostOrSubdomain(host, "youtube.com"):
		path := strings.Trim(u.Path, "/")
		if path == "watch" {
			videoID = u.Query().Get("v")
		} else if strings.HasPrefix(path, "shorts/") {
			videoID = strings.TrimPrefix(path, "shorts/")
		} else if strings.HasPrefix(path, "embed/") {
			videoID = strings.TrimPrefix(path, "embed/")
		} else if strings.HasPrefix(path, "live/") {
			videoID = strings.TrimPrefix(path, "live/")
		}
		if strings.Contains(videoID, "/") {
			videoID = strings.Split(videoID, "/")[0]
		}
	default:
		return mediaEmbed{}, false
	}

	if videoID == "" {
		return mediaEmbed{}, false
	}

	embedURL := fmt.Sprintf("https://www.youtube.com/embed/%s", videoID)
	embedValues := url.Values{}
	embedValues.Set("rel", "0")
	embedValues.Set("modestbranding", "1")
	embedValues.Set("playsinline", "1")
	if start := parseYouTubeStart(u); start > 0 {
		embedValues.Set("start", strconv.Itoa(start))
	}
	embedURL = embedURL + "?" + embedValues.Encode()

	return mediaEmbed{
		Platform: "youtube",
		Source:   source,
		EmbedURL: embedURL,
		Aspect:   mediaAspectVideo,
	}, true
}

func parseYouTubeStart(u *url.URL) int {
	if u == nil {
		return 0
	}
	query := u.Query()
	if value := query.Get("start"); value != "" {
		return parseYouTubeTime(value)
	}
	if value := query.Get("t"); value != "" {
		return parseYouTubeTime(value)
	}
	return 0
}

func parseYouTubeTime(value string) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0
	}
	if onlyDigits(trimmed) {
		seconds, err := strconv.Atoi(trimmed)
		if err == nil && seconds > 0 {
			return seconds
		}
		return 0
	}

	matches := mediaEmbedTimePattern.FindAllStringSubmatch(trimmed, -1)
	if len(matches) == 0 {
		return 0
	}

	total := 0
	for _, match := range matches {
		value, err := strconv.Atoi(match[1])
		if err != nil || value <= 0 {
			continue
		}
		switch strings.ToLower(match[2]) {
		case "h":
			total += value * 3600
		case "m":
			total += value * 60
		case "s":
			total += value
		}
	}

	return total
}

func onlyDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return value != ""
}

func parseVimeoEmbed(u *url.URL, source string) (mediaEmbed, bool) {
	host := strings.ToLower(u.Hostname())
	if !isHostOrSubdomain(host, "vimeo.com") {
		return mediaEmbed{}, false
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	videoID := ""
	if host == "player.vimeo.com" {
		if len(segments) >= 2 && segments[0] == "video" && onlyDigits(segments[1]) {
			videoID = segments[1]
		}
	} else {
		// vimeo.com/<id> 以及 vimeo.com/channels/<name>/<id> 都取数字段
		for _, segment := range segments {
			if onlyDigits(segment) {
				videoID = segment
				break
			}
		}
	}
	if videoID == "" {
		return mediaEmbed{}, false
	}

	values := url.Values{}
	values.Set("dnt", "1")
	embedURL := fmt.Sprintf("https://player.vimeo.com/video/%s?%s", videoID, values.Encode())

	return mediaEmbed{
		Platform: "vimeo",
		Source:   source,
		EmbedURL: embedURL,
		Aspect:   mediaAspectVideo,
	}, true
}

func parseSoundCloudEmbed(u *url.URL, source string) (mediaEmbed, bool) {
	host := strings.ToLower(u.Hostname())
	if !isHostOrSubdomain(host, "soundcloud.com") {
		return mediaEmbed{}, false
	}

	// 曲目链接形如 soundcloud.com/<artist>/<track>
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 || segments[0] == "" || segments[1] == "" {
		return mediaEmbed{}, false
	}
	switch segments[0] {
	case "discover", "search", "stream", "you", "tags":
		return mediaEmbed{}, false
	}

	trackURL := "https://soundcloud.com/" + segments[0] + "/" + segments[1]
	values := url.Values{}
	values.Set("url", trackURL)
	values.Set("auto_play", "false")
	values.Set("show_teaser", "false")
	embedURL := "https://w.soundcloud.com/player/?" + values.Encode()

	return mediaEmbed{
		Platform: "soundcloud",
		Source:   source,
		EmbedURL: embedURL,
		Aspect:   mediaAspectAudio,
	}, true
}

func parseSpotifyEmbed(u *url.URL, source string) (mediaEmbed, bool) {
	host := strings.ToLower(u.Hostname())
	if host != "open.spotify.com" {
		return mediaEmbed{}, false
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) >= 1 && segments[0] == "embed" {
		segments = segments[1:]
	}
	if len(segments) < 2 || segments[1] == "" {
		return mediaEmbed{}, false
	}

	kind := segments[0]
	switch kind {
	case "track", "album", "playlist", "artist", "episode", "show":
	default:
		return mediaEmbed{}, false
	}

	embedURL := fmt.Sprintf("https://open.spotify.com/embed/%s/%s", kind, segments[1])

	return mediaEmbed{
		Platform: "spotify",
		Source:   source,
		EmbedURL: embedURL,
		Aspect:   mediaAspectAudio,
	}, true
}

func buildMediaEmbedHTML(embed mediaEmbed) string {
	platform := htmlstd.EscapeString(embed.Platform)
	aspect := htmlstd.EscapeString(embed.Aspect)
	source := htmlstd.EscapeString(embed.Source)
	embedURL := htmlstd.EscapeString(embed.EmbedURL)
	title := htmlstd.EscapeString(mediaEmbedTitle(embed.Platform))

	return fmt.Sprintf(
		`<div class="media-embed is-loading" data-media-embed="true" data-media-platform="%s" data-media-aspect="%s" data-media-source="%s">`+
			`<iframe src="%s" title="%s" loading="lazy" allow="%s" allowfullscreen frameborder="0" referrerpolicy="strict-origin-when-cross-origin"></iframe>`+
			`</div>`,
		platform,
		aspect,
		source,
		embedURL,
		title,
		mediaEmbedAllowAttribute(),
	)
}

func mediaEmbedTitle(platform string) string {
	switch platform {
	case "youtube":
		return "YouTube 播放器"
	case "vimeo":
		return "Vimeo 播放器"
	case "soundcloud":
		return "SoundCloud 播放器"
	case "spotify":
		return "Spotify 播放器"
	default:
		return "媒体播放器"
	}
}

func mediaEmbedAllowAttribute() string {
	return "accelerometer; clipboard-write; encrypted-media; gyroscope; picture-in-picture; web-share"
}

func isHostOrSubdomain(host, domain string) bool {
	host = strings.ToLower(strings.TrimSpace(host))
	domain = strings.ToLower(strings.TrimSpace(domain))
	if host == "" || domain == "" {
		return false
	}
	return host == domain || strings.HasSuffix(host, "."+domain)
}
