package annotate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/inodb/vibe-anno/internal/conf"
	"github.com/inodb/vibe-anno/internal/fsutil"
	"github.com/inodb/vibe-anno/internal/metadata"
	"github.com/inodb/vibe-anno/internal/transaction"
)

// outputExt is the suffix appended to an annotated output's stem along with
// the primary profile name. Its presence in an input name marks the file as
// already annotated.
const outputExt = "-annotated-"

// Runner executes the vcfanno annotation engine over a VCF file and produces
// a compressed, indexed output.
type Runner struct {
	logger *zap.Logger
}

// NewRunner creates a runner.
func NewRunner() *Runner {
	return &Runner{logger: zap.NewNop()}
}

// SetLogger sets the logger for progress messages.
func (r *Runner) SetLogger(l *zap.Logger) {
	r.logger = l
}

// Run annotates vcfPath with the given configuration and script fragments and
// returns the bgzipped, tabix-indexed output path. Fragment order is
// normalized by basename so the combined configuration is deterministic. An
// input already carrying the annotation marker, or an already-existing
// output, short-circuits without invoking the engine. With basePath set the
// engine resolves relative references itself and fragment paths are copied
// verbatim; with decomposed set, per-allele INFO counts are rewritten to
// single values for downstream allele-decomposed consumers.
func (r *Runner) Run(ctx context.Context, vcfPath string, confFns, luaFns []string, rec *metadata.SampleRecord, basePath string, decomposed bool) (string, error) {
	if len(confFns) == 0 {
		return "", errors.New("no annotation configuration fragments given")
	}
	sortByBase(confFns)
	sortByBase(luaFns)

	confStem, _ := fsutil.SplitExt(filepath.Base(confFns[0]))
	marker := outputExt + confStem

	outFile := vcfPath
	if !containsMarker(vcfPath, marker) {
		stem, _ := fsutil.SplitExt(vcfPath)
		outFile = stem + marker + ".vcf.gz"
	}

	if fsutil.Exists(outFile) {
		r.logger.Debug("annotated output exists, skipping annotation",
			zap.String("out", outFile))
	} else {
		err := transaction.WithFile(outFile, func(txPath string) error {
			return r.annotate(ctx, vcfPath, txPath, outFile, confFns, luaFns, rec, basePath, decomposed)
		})
		if err != nil {
			return "", err
		}
	}
	return bgzipAndIndex(ctx, outFile, rec)
}

func (r *Runner) annotate(ctx context.Context, vcfPath, txPath, outFile string, confFns, luaFns []string, rec *metadata.SampleRecord, basePath string, decomposed bool) error {
	conffn, err := conf.Combine(confFns, outFile, rec, basePath == "")
	if err != nil {
		return err
	}
	if conffn == "" {
		return fmt.Errorf("no annotation configurations exist among %v", confFns)
	}
	luafn, err := conf.Combine(luaFns, outFile, rec, false)
	if err != nil {
		return err
	}

	args := []string{"-p", strconv.Itoa(rec.Cores())}
	if luafn != "" && fsutil.Exists(luafn) {
		args = append(args, "-lua", luafn)
	}
	if basePath != "" {
		args = append(args, "-base-path", basePath)
	}
	args = append(args, conffn, vcfPath)

	r.logger.Info("annotating with vcfanno",
		zap.String("vcf", vcfPath),
		zap.String("conf", conffn))
	return r.execPipeline(ctx, txPath, args, rec, decomposed)
}

// execPipeline runs `vcfanno <args> | bgzip -c > txPath`, inserting the
// allele-number rewriter between the two when decomposed is set.
func (r *Runner) execPipeline(ctx context.Context, txPath string, args []string, rec *metadata.SampleRecord, decomposed bool) error {
	engine := exec.CommandContext(ctx, rec.Program("vcfanno"), args...)
	engine.Stderr = os.Stderr
	engineOut, err := engine.StdoutPipe()
	if err != nil {
		return fmt.Errorf("pipe vcfanno output: %w", err)
	}

	txFile, err := os.Create(txPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer txFile.Close()

	compress := exec.CommandContext(ctx, rec.Program("bgzip"), "-c")
	compress.Stdout = txFile
	compress.Stderr = os.Stderr

	filterErr := make(chan error, 1)
	var compressIn io.WriteCloser
	if decomposed {
		compressIn, err = compress.StdinPipe()
		if err != nil {
			return fmt.Errorf("pipe bgzip input: %w", err)
		}
		go func() {
			defer compressIn.Close()
			filterErr <- rewriteAlleleNumbers(compressIn, engineOut)
		}()
	} else {
		compress.Stdin = engineOut
		filterErr <- nil
	}

	if err := engine.Start(); err != nil {
		return fmt.Errorf("start vcfanno: %w", err)
	}
	if err := compress.Start(); err != nil {
		engine.Process.Kill()
		engine.Wait()
		if compressIn != nil {
			// unblock the rewriter so it can report and exit
			compressIn.Close()
		}
		return fmt.Errorf("start bgzip: %w", err)
	}
	// The filter drains the engine's stdout; it must finish before Wait
	// closes the pipe.
	ferr := <-filterErr
	engineErr := engine.Wait()
	compressErr := compress.Wait()

	if engineErr != nil {
		return fmt.Errorf("vcfanno failed: %w", engineErr)
	}
	if ferr != nil {
		return fmt.Errorf("rewrite allele numbers: %w", ferr)
	}
	if compressErr != nil {
		return fmt.Errorf("bgzip failed: %w", compressErr)
	}
	return nil
}

func sortByBase(fns []string) {
	sort.Slice(fns, func(i, j int) bool {
		return filepath.Base(fns[i]) < filepath.Base(fns[j])
	})
}

// containsMarker reports whether path already carries the annotation marker.
func containsMarker(path, marker string) bool {
	return strings.Index(path, marker) > 0
}
