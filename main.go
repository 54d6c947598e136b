package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/gin-gonic/gin"

	"seo_article_writer/config"
	"seo_article_writer/generator"
	"seo_article_writer/history"
	"seo_article_writer/logging"
	"seo_article_writer/publisher"
	"seo_article_writer/server"
	"seo_article_writer/storage"
	"seo_article_writer/writer"
)

type options struct {
	configPath string
	serve      bool
	addr       string

	topic    string
	audience string
	keywords string
	length   string
	setKey   string

	list     bool
	show     int64
	plain    bool
	delete   int64
	clear    bool
	export   int64
	out      string
	renderer string
}

func main() {
	var o options
	newFlagSet(&o).Parse(os.Args[1:])

	if err := run(context.Background(), o, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newFlagSet(o *options) *flag.FlagSet {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	fs.StringVar(&o.configPath, "config", "config/config.yaml", "path to config.yaml")
	fs.BoolVar(&o.serve, "serve", false, "start web server")
	fs.StringVar(&o.addr, "addr", "", "http listen address when --serve (overrides server.addr)")
	fs.StringVar(&o.topic, "topic", "", "article topic to generate")
	fs.StringVar(&o.audience, "audience", "", "target audience code: "+optionCodes(generator.Audiences()))
	fs.StringVar(&o.keywords, "keywords", "", "keywords to include")
	fs.StringVar(&o.length, "length", generator.DefaultLength, "article length: "+optionCodes(generator.Lengths()))
	fs.StringVar(&o.setKey, "set-key", "", "save the API key and exit")
	fs.BoolVar(&o.list, "list", false, "list recent articles")
	fs.Int64Var(&o.show, "show", 0, "print the HTML of a recent article by id")
	fs.BoolVar(&o.plain, "plain", false, "with -show or -topic, print plain text instead of HTML")
	fs.Int64Var(&o.delete, "delete", 0, "delete a recent article by id")
	fs.BoolVar(&o.clear, "clear", false, "delete all recent articles")
	fs.Int64Var(&o.export, "export", 0, "export a recent article by id to -out")
	fs.StringVar(&o.out, "out", "", "output file for -export")
	fs.StringVar(&o.renderer, "renderer", publisher.RendererBasic, "renderer for -export: basic or goldmark")
	return fs
}

func optionCodes(opts []generator.Option) string {
	codes := make([]string, 0, len(opts))
	for _, o := range opts {
		codes = append(codes, o.Code)
	}
	return strings.Join(codes, ", ")
}

func run(ctx context.Context, o options, stdout io.Writer) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	logger := logging.New(cfg.Log.Level)
	slog.SetDefault(logger)

	kv, err := storage.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer func() {
		if err := kv.Close(); err != nil {
			logger.Warn("close storage", "err", err)
		}
	}()

	sess, err := buildSession(ctx, cfg, kv, logger)
	if err != nil {
		return err
	}

	switch {
	case o.serve:
		return serve(cfg, o.addr, sess, logger)
	case o.setKey != "":
		if err := sess.SetAPIKey(ctx, o.setKey); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "API Key ถูกบันทึกแล้ว")
		return nil
	case o.topic != "":
		res, err := sess.Generate(ctx, writer.Request{
			Topic:          o.topic,
			TargetAudience: o.audience,
			Keywords:       o.keywords,
			WordCount:      o.length,
		})
		if err != nil {
			return fmt.Errorf("เกิดข้อผิดพลาด: %w", err)
		}
		logger.Info("article saved", "id", res.Article.ID)
		return printResult(ctx, stdout, sess, res, o.plain)
	case o.list:
		return printList(ctx, stdout, sess)
	case o.show != 0:
		res, err := sess.Open(ctx, o.show)
		if err != nil {
			return err
		}
		return printResult(ctx, stdout, sess, res, o.plain)
	case o.delete != 0:
		return sess.Delete(ctx, o.delete)
	case o.clear:
		return sess.Clear(ctx)
	case o.export != 0:
		if o.out == "" {
			return fmt.Errorf("-export requires -out")
		}
		rec, err := sess.Open(ctx, o.export)
		if err != nil {
			return err
		}
		path, err := publisher.New(logger).Publish(ctx, publisher.PublishParams{
			Record:   rec.Article,
			OutPath:  o.out,
			Renderer: o.renderer,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, path)
		return nil
	default:
		return fmt.Errorf("nothing to do: pass -serve, -topic, -list, -show, -delete, -clear, -export or -set-key")
	}
}

func buildSession(ctx context.Context, cfg config.Config, kv storage.KV, logger *slog.Logger) (*writer.Session, error) {
	provider, err := generator.NewProvider(generator.LLMSettings{
		Provider: cfg.LLM.Provider,
		Model:    cfg.LLM.Model,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
		Timeout:  cfg.LLM.Timeout,
		Params: generator.GenerationParams{
			Temperature:     cfg.LLM.Temperature,
			TopK:            cfg.LLM.TopK,
			TopP:            cfg.LLM.TopP,
			MaxOutputTokens: cfg.LLM.MaxOutputTokens,
		},
	})
	if err != nil {
		return nil, err
	}
	agent, err := generator.NewAgent(provider, logger)
	if err != nil {
		return nil, err
	}
	recent := history.NewStore(history.NewKVBackend(kv, logger))
	sess, err := writer.NewSession(ctx, kv, recent, agent, logger)
	if err != nil {
		return nil, err
	}
	// A key from config or env only seeds a session that has none saved.
	if sess.APIKey() == "" && cfg.LLM.APIKey != "" {
		if err := sess.SetAPIKey(ctx, cfg.LLM.APIKey); err != nil {
			return nil, err
		}
	}
	return sess, nil
}

func serve(cfg config.Config, addr string, sess *writer.Session, logger *slog.Logger) error {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	srv, err := server.New(sess, logger, cfg.LLM.Timeout)
	if err != nil {
		return err
	}
	listen := cfg.ListenAddress()
	if addr != "" {
		listen = addr
	}
	logger.Info("starting web server", "addr", listen)
	return http.ListenAndServe(listen, srv.Routes())
}

func printResult(ctx context.Context, w io.Writer, sess *writer.Session, res writer.Result, plain bool) error {
	if plain {
		text, err := sess.PlainText(ctx, res.Article.ID)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, text)
		return nil
	}
	fmt.Fprintf(w, "<!-- id=%d เวลาอ่าน: %d นาที จำนวนคำ: %d คำ -->\n", res.Article.ID, res.Reading.Minutes, res.Reading.Words)
	if len(res.TOC) > 0 {
		toc, err := json.Marshal(res.TOC)
		if err != nil {
			return fmt.Errorf("encode toc: %w", err)
		}
		fmt.Fprintf(w, "<!-- toc=%s -->\n", toc)
	}
	fmt.Fprintln(w, res.HTML)
	return nil
}

func printList(ctx context.Context, w io.Writer, sess *writer.Session) error {
	records, err := sess.Recent(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(w, "ยังไม่มีบทความที่สร้างไว้")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tAUDIENCE\tTITLE")
	for _, r := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), generator.AudienceLabel(r.TargetAudience), r.Title)
	}
	return tw.Flush()
}
