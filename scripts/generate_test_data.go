package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/stagefront/internal/cms"
	"github.com/stagefront/internal/config"
)

// 测试数据生成器：通过内容后端 API 写入一套演示内容，
// 方便在空后端上快速搭出可浏览的站点。
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("加载配置失败:", err)
	}

	username := envOr("SEED_USERNAME", "admin")
	password := envOr("SEED_PASSWORD", "admin123")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client := cms.New(cfg.APIBaseURL, cfg.APITimeout, zap.NewNop())
	tokens, err := client.Login(ctx, username, password)
	if err != nil {
		log.Fatal("登录后端失败:", err)
	}
	api := client.WithToken(tokens.Access)

	fmt.Println("开始生成测试数据...")

	sections, err := createTestSections(ctx, api)
	if err != nil {
		log.Fatal("创建栏目失败:", err)
	}

	if err := createHeroBlock(ctx, api); err != nil {
		log.Fatal("创建首页内容块失败:", err)
	}

	if err := createTestPages(ctx, api, sections); err != nil {
		log.Fatal("创建页面失败:", err)
	}

	if err := createTestPosts(ctx, api); err != nil {
		log.Fatal("创建文章失败:", err)
	}

	fmt.Println("测试数据生成完成！")
	fmt.Println("栏目: 关于、巡演、媒体报道")
	fmt.Println("页面: 每个栏目各一篇")
	fmt.Println("文章: 5 篇演示文章（2 篇精选）")
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// 创建测试栏目，已有栏目时跳过并复用现状。
func createTestSections(ctx context.Context, api *cms.Client) ([]cms.Section, error) {
	existing, err := api.ListSections(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing.Results) > 0 {
		fmt.Println("栏目已存在，跳过创建")
		return existing.Results, nil
	}

	inputs := []cms.SectionInput{
		{Name: "关于乐队", Slug: "about", SectionType: "about", Description: "成员介绍与乐队历程", IsActive: true, Order: 1, ShowInNav: true},
		{Name: "巡演", Slug: "tour", SectionType: "custom", Description: "演出日程与回顾", IsActive: true, Order: 2, ShowInNav: true, NavTitle: "Tour"},
		{Name: "媒体报道", Slug: "press", SectionType: "custom", Description: "采访与乐评", IsActive: true, Order: 3, ShowInNav: true},
	}

	sections := make([]cms.Section, 0, len(inputs))
	for _, input := range inputs {
		section, err := api.CreateSection(ctx, input)
		if err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}

	fmt.Println("✅ 测试栏目创建完成")
	return sections, nil
}

// 创建首页 hero 内容块，已存在同标识块时跳过。
func createHeroBlock(ctx context.Context, api *cms.Client) error {
	blocks, err := api.ListBlocks(ctx)
	if err != nil {
		return err
	}
	for _, block := range blocks.Results {
		if block.Identifier == "hero" {
			fmt.Println("hero 内容块已存在，跳过创建")
			return nil
		}
	}

	_, err = api.CreateBlock(ctx, cms.BlockInput{
		Name:       "首页大图",
		BlockType:  "hero",
		Identifier: "hero",
		Title:      "新专辑《夜航》现已上线",
		Content: "巡演途中写下的十首歌，关于告别、公路和凌晨四点的电台。\n\n" +
			"https://soundcloud.com/forss/flickermood",
		URL:        "/blog/night-flight-release",
		ButtonText: "了解更多",
		IsActive:   true,
	})
	if err != nil {
		return err
	}

	fmt.Println("✅ 首页内容块创建完成")
	return nil
}

// 为每个栏目创建一篇演示页面，页面已存在时整体跳过。
func createTestPages(ctx context.Context, api *cms.Client, sections []cms.Section) error {
	existing, err := api.ListPages(ctx)
	if err != nil {
		return err
	}
	if len(existing.Results) > 0 {
		fmt.Println("页面已存在，跳过创建")
		return nil
	}

	sectionBySlug := make(map[string]uint, len(sections))
	for _, section := range sections {
		sectionBySlug[section.Slug] = section.ID
	}

	pages := []struct {
		sectionSlug string
		input       cms.PageInput
	}{
		{
			sectionSlug: "about",
			input: cms.PageInput{
				Title:  "乐队简介",
				Slug:   "band-bio",
				Status: "published",
				Content: "## 我们是谁\n\n四个人，两把吉他，一台模拟合成器。" +
					"2019 年成立于海边的排练室，至今跑了三十多个城市。\n\n" +
					"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
				Excerpt:         "成员介绍与乐队历程。",
				MetaTitle:       "乐队简介",
				MetaDescription: "乐队成员介绍、成立经历与音乐风格。",
			},
		},
		{
			sectionSlug: "tour",
			input: cms.PageInput{
				Title:           "2025 巡演日程",
				Slug:            "tour-2025",
				Status:          "published",
				Content:         "## 秋季场次\n\n| 日期 | 城市 | 场地 |\n| --- | --- | --- |\n| 10-02 | 上海 | 万代南梦宫 |\n| 10-09 | 杭州 | 酒球会 |\n| 10-16 | 成都 | 正火艺术中心 |",
				Excerpt:         "秋季巡演的城市与场地一览。",
				MetaTitle:       "2025 巡演日程",
				MetaDescription: "2025 年秋季巡演的完整日程。",
			},
		},
		{
			sectionSlug: "press",
			input: cms.PageInput{
				Title:           "媒体联络",
				Slug:            "press-kit",
				Status:          "published",
				Content:         "## 采访与授权\n\n商务与媒体合作请联系 booking@example.com，资料包内含高清照片与乐队简介。",
				Excerpt:         "采访、授权与资料包获取方式。",
				MetaTitle:       "媒体联络",
				MetaDescription: "媒体采访与素材授权的联系方式。",
			},
		},
	}

	for _, page := range pages {
		page.input.SectionID = sectionBySlug[page.sectionSlug]
		if _, err := api.CreatePage(ctx, page.input); err != nil {
			return err
		}
	}

	fmt.Println("✅ 测试页面创建完成")
	return nil
}

// 创建演示文章，已有文章时跳过。
func createTestPosts(ctx context.Context, api *cms.Client) error {
	existing, err := api.ListPosts(ctx)
	if err != nil {
		return err
	}
	if len(existing.Results) > 0 {
		fmt.Println("文章已存在，跳过创建")
		return nil
	}

	posts := []cms.PostInput{
		{
			Title:           "新专辑《夜航》发行",
			Slug:            "night-flight-release",
			Status:          "published",
			Content:         "十首歌做了两年，最后一首的和声录了四十多遍。\n\nhttps://open.spotify.com/album/4aawyAB9vmqN3uQ7FjRGTy",
			Excerpt:         "两年打磨的十首歌，现已全平台上线。",
			Category:        "releases",
			Tags:            "专辑,发行",
			AllowComments:   true,
			IsFeatured:      true,
			ReadTimeMinutes: 3,
		},
		{
			Title:           "秋季巡演开票",
			Slug:            "fall-tour-tickets",
			Status:          "published",
			Content:         "十月三座城市，预售通道已开。早鸟票数量有限。",
			Excerpt:         "十月上海、杭州、成都三站，预售开启。",
			Category:        "tour",
			Tags:            "巡演,售票",
			AllowComments:   true,
			IsFeatured:      true,
			ReadTimeMinutes: 2,
		},
		{
			Title:           "排练室日记：合成器的新玩法",
			Slug:            "studio-diary-synths",
			Status:          "published",
			Content:         "把老琴接进新的效果链，声音一下子活了。\n\nhttps://vimeo.com/76979871",
			Excerpt:         "一台老合成器的重生记录。",
			Category:        "studio",
			Tags:            "排练,设备",
			AllowComments:   true,
			ReadTimeMinutes: 4,
		},
		{
			Title:           "上海站回顾",
			Slug:            "shanghai-recap",
			Status:          "published",
			Content:         "安可唱到第三首，台下的合唱比返送还响。感谢每一位到场的朋友。",
			Excerpt:         "满场合唱的一夜。",
			Category:        "tour",
			Tags:            "巡演,回顾",
			AllowComments:   true,
			ReadTimeMinutes: 3,
		},
		{
			Title:           "下一张唱片的一些想法",
			Slug:            "next-record-notes",
			Status:          "draft",
			Content:         "还很零碎，先记下来：更多的器乐段落，更少的修音。",
			Excerpt:         "工作手记，未完成。",
			Category:        "studio",
			Tags:            "创作",
			AllowComments:   false,
			ReadTimeMinutes: 2,
		},
	}

	for _, input := range posts {
		if input.MetaTitle == "" {
			input.MetaTitle = input.Title
		}
		if _, err := api.CreatePost(ctx, input); err != nil {
			return err
		}
	}

	fmt.Println("✅ 测试文章创建完成")
	return nil
}
