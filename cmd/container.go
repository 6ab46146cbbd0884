package main

import (
	"context"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/Abraxas-365/sift/internal/ai/embeddings"
	"github.com/Abraxas-365/sift/internal/ai/skillsim"
	"github.com/Abraxas-365/sift/internal/config"
	"github.com/Abraxas-365/sift/internal/pdf"
	"github.com/Abraxas-365/sift/matching/analysis/analysisapi"
	"github.com/Abraxas-365/sift/matching/analysis/analysisinfra"
	"github.com/Abraxas-365/sift/matching/analysis/analysissrv"
	"github.com/Abraxas-365/sift/matching/analysis/worker"
	"github.com/Abraxas-365/sift/matching/engine"
	"github.com/Abraxas-365/sift/pkg/fsx"
	"github.com/Abraxas-365/sift/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/sift/pkg/logx"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	S3Client   *s3.Client

	// Domain
	Engine          *engine.Engine
	AnalysisService *analysissrv.Service
	Worker          *worker.AnalysisWorker

	// API Handlers
	AnalysisHandlers *analysisapi.AnalysisHandlers
}

// NewContainer initializes the dependency injection container
func NewContainer(cfg *config.Config) *Container {
	c := &Container{Config: cfg}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	db, err := sqlx.Connect("postgres", c.Config.DSN())
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Addr,
		Password: c.Config.Redis.Password,
		DB:       0,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. AWS S3 Configuration
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(c.Config.AWS.Region))
	if err != nil {
		logx.Fatalf("unable to load SDK config, %v", err)
	}
	c.S3Client = s3.NewFromConfig(awsCfg)
	c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, c.Config.AWS.Bucket, "uploads")
}

func (c *Container) initServices() {
	// --- Scoring Engine ---
	vocab, err := c.Config.Vocabulary()
	if err != nil {
		logx.Fatalf("Failed to load vocabulary: %v", err)
	}

	engineOpts := []engine.Option{
		engine.WithVocabulary(vocab),
		engine.WithDurationPolicy(c.Config.DurationPolicy()),
	}

	if c.Config.OpenAI.SemanticSkills {
		if c.Config.OpenAI.APIKey == "" {
			logx.Warn("Semantic skills scoring enabled but no OpenAI API key set, using lexical scoring")
		} else {
			generator := embeddings.NewEmbeddingsGenerator(c.Config.OpenAI.APIKey)
			engineOpts = append(engineOpts,
				engine.WithSkillsScorer(skillsim.NewScorer(generator, c.Config.OpenAI.SimilarityThreshold)))
			logx.Info("Semantic skills scoring enabled")
		}
	}

	c.Engine = engine.New(engineOpts...)

	// --- Repositories & Queue ---
	repo := analysisinfra.NewPostgresAnalysisRepository(c.DB)
	jobRepo := analysisinfra.NewPostgresJobRepository(c.DB)
	queue := analysisinfra.NewRedisQueue(c.Redis, "analysis_jobs")
	extractor := pdf.NewExtractor()

	// --- Analysis Service ---
	c.AnalysisService = analysissrv.NewService(
		c.Engine,
		repo,
		jobRepo,
		queue,
		extractor,
		analysissrv.WithWorkers(c.Config.Analysis.Workers),
		analysissrv.WithCvTimeout(c.Config.Analysis.CvTimeout),
		analysissrv.WithDefaultWeights(c.Config.Weights()),
	)

	// --- Background Worker ---
	c.Worker = worker.NewAnalysisWorker(c.AnalysisService, queue, c.Config.Analysis.QueueWorkers)

	// --- Handlers ---
	c.AnalysisHandlers = analysisapi.NewAnalysisHandlers(c.AnalysisService, c.FileSystem)
}
