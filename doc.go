// Package testdir builds temporary directory trees for tests.
//
// A [TestDir] owns a root directory and materializes files and
// subdirectories under it through a chainable API. When the fixture is
// released the whole tree is removed.
//
//	d := testdir.New(t).
//		Create("test/dir", testdir.Dir()).
//		Create("test/file", testdir.EmptyFile()).
//		Create("test/random_file", testdir.RandomFile(100)).
//		Create("otherdir/zero_file", testdir.ZeroFile(100))
//
//	path := d.Path("test/random_file")
//
// [New] binds the fixture to the test: setup failures fail the test via
// Fatalf, and the root is removed via Cleanup. Error-returning siblings
// ([Temp], [At], [TestDir.Mk], [TestDir.Resolve], [TestDir.Unlink])
// exist for callers outside a test context; such callers release the
// fixture themselves, typically with defer:
//
//	d, err := testdir.Temp()
//	if err != nil {
//		return err
//	}
//	defer d.Release()
//
// Setup is strict and teardown is best-effort: any failure while
// materializing the tree surfaces immediately, while a failure to
// remove the tree on release is logged and never propagates, so
// teardown cannot mask the outcome of the test that used the fixture.
//
// Not recommended for use outside of tests.
package testdir
